package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"artify/internal/models/db_models"
	"artify/pkg/utils"
)

// CreditRepository mutates credit counts only through single atomic UPDATE
// statements. The decrement is guarded by the count itself, so two
// concurrent requests can never both spend the last credit.
type CreditRepository interface {
	Seed(ctx context.Context, userID uuid.UUID, images, trainings int) error
	Get(ctx context.Context, userID uuid.UUID) (*db_models.CreditLedger, error)
	DecrementTraining(ctx context.Context, userID uuid.UUID) error
	IncrementTraining(ctx context.Context, userID uuid.UUID) error
	DecrementImage(ctx context.Context, userID uuid.UUID) error
	IncrementImage(ctx context.Context, userID uuid.UUID) error
	WithTx(tx *gorm.DB) CreditRepository
}

type creditRepository struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) CreditRepository {
	return &creditRepository{db: db}
}

// WithTx returns a repository bound to an open transaction, so credit
// adjustments can commit or roll back together with related row updates.
func (r *creditRepository) WithTx(tx *gorm.DB) CreditRepository {
	return &creditRepository{db: tx}
}

// Seed creates the initial ledger row for a fresh account.
func (r *creditRepository) Seed(ctx context.Context, userID uuid.UUID, images, trainings int) error {
	return r.db.WithContext(ctx).Create(&db_models.CreditLedger{
		UserID:                  userID,
		ImageGenerationCount:    images,
		MaxImageGenerationCount: images,
		ModelTrainingCount:      trainings,
		MaxModelTrainingCount:   trainings,
	}).Error
}

func (r *creditRepository) Get(ctx context.Context, userID uuid.UUID) (*db_models.CreditLedger, error) {
	var row db_models.CreditLedger
	err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrCreditRowMissing
		}
		return nil, err
	}
	return &row, nil
}

func (r *creditRepository) DecrementTraining(ctx context.Context, userID uuid.UUID) error {
	return r.decrement(ctx, userID, "model_training_count")
}

func (r *creditRepository) IncrementTraining(ctx context.Context, userID uuid.UUID) error {
	return r.increment(ctx, userID, "model_training_count")
}

func (r *creditRepository) DecrementImage(ctx context.Context, userID uuid.UUID) error {
	return r.decrement(ctx, userID, "image_generation_count")
}

func (r *creditRepository) IncrementImage(ctx context.Context, userID uuid.UUID) error {
	return r.increment(ctx, userID, "image_generation_count")
}

func (r *creditRepository) decrement(ctx context.Context, userID uuid.UUID, column string) error {
	res := r.db.WithContext(ctx).Model(&db_models.CreditLedger{}).
		Where("user_id = ? AND "+column+" > 0", userID).
		UpdateColumn(column, gorm.Expr(column+" - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either no row or the count is already zero; distinguish for the
		// caller because a missing row is fatal, an empty one is billable.
		if _, err := r.Get(ctx, userID); err != nil {
			return err
		}
		return utils.ErrInsufficientCredits
	}
	return nil
}

func (r *creditRepository) increment(ctx context.Context, userID uuid.UUID, column string) error {
	res := r.db.WithContext(ctx).Model(&db_models.CreditLedger{}).
		Where("user_id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrCreditRowMissing
	}
	return nil
}
