package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"artify/internal/models/db_models"
)

type ImageRepository interface {
	InsertBatch(ctx context.Context, images []db_models.GeneratedImage) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.GeneratedImage, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.GeneratedImage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) InsertBatch(ctx context.Context, images []db_models.GeneratedImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *imageRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.GeneratedImage, error) {
	var images []db_models.GeneratedImage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&images).Error
	return images, err
}

func (r *imageRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.GeneratedImage{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *imageRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.GeneratedImage, error) {
	var image db_models.GeneratedImage
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.GeneratedImage{}, "id = ?", id).Error
}
