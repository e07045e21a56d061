package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"artify/internal/models/db_models"
)

type ModelRepository interface {
	Insert(ctx context.Context, model *db_models.Model) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Model, error)
	FindByJobToken(ctx context.Context, token string) (*db_models.Model, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Model, int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.TrainingStatus) error
	UpdateSucceeded(ctx context.Context, id uuid.UUID, trainingTime float64, version string) error
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx *gorm.DB) ModelRepository
}

type modelRepository struct {
	db *gorm.DB
}

func NewModelRepository(db *gorm.DB) ModelRepository {
	return &modelRepository{db: db}
}

func (r *modelRepository) WithTx(tx *gorm.DB) ModelRepository {
	return &modelRepository{db: tx}
}

func (r *modelRepository) Insert(ctx context.Context, model *db_models.Model) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *modelRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Model, error) {
	var model db_models.Model
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *modelRepository) FindByJobToken(ctx context.Context, token string) (*db_models.Model, error) {
	var model db_models.Model
	err := r.db.WithContext(ctx).First(&model, "job_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &model, nil
}

func (r *modelRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Model, int64, error) {
	var models []db_models.Model
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	return models, int64(len(models)), nil
}

func (r *modelRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Model{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *modelRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status db_models.TrainingStatus) error {
	return r.db.WithContext(ctx).Model(&db_models.Model{}).
		Where("id = ?", id).
		Update("training_status", status).Error
}

func (r *modelRepository) UpdateSucceeded(ctx context.Context, id uuid.UUID, trainingTime float64, version string) error {
	return r.db.WithContext(ctx).Model(&db_models.Model{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"training_status": db_models.TrainingStatusSucceeded,
			"training_time":   trainingTime,
			"version":         version,
		}).Error
}

func (r *modelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Model{}, "id = ?", id).Error
}
