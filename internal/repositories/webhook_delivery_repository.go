package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artify/internal/models/db_models"
	"artify/pkg/utils"
)

// WebhookDeliveryRepository records processed delivery ids so redelivered
// callbacks short-circuit instead of double-applying refunds or mail.
type WebhookDeliveryRepository interface {
	// Claim inserts the delivery row; ErrDuplicateDelivery means another
	// (or an earlier) request already claimed this id.
	Claim(ctx context.Context, delivery *db_models.WebhookDelivery) error
	MarkProcessed(ctx context.Context, delivery *db_models.WebhookDelivery) error
	WithTx(tx *gorm.DB) WebhookDeliveryRepository
}

type webhookDeliveryRepository struct {
	db *gorm.DB
}

func NewWebhookDeliveryRepository(db *gorm.DB) WebhookDeliveryRepository {
	return &webhookDeliveryRepository{db: db}
}

func (r *webhookDeliveryRepository) WithTx(tx *gorm.DB) WebhookDeliveryRepository {
	return &webhookDeliveryRepository{db: tx}
}

func (r *webhookDeliveryRepository) Claim(ctx context.Context, delivery *db_models.WebhookDelivery) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}, {Name: "delivery_id"}},
			DoNothing: true,
		}).
		Create(delivery)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrDuplicateDelivery
	}
	return nil
}

func (r *webhookDeliveryRepository) MarkProcessed(ctx context.Context, delivery *db_models.WebhookDelivery) error {
	now := time.Now().Unix()
	return r.db.WithContext(ctx).Model(delivery).
		Update("processed_at", now).Error
}
