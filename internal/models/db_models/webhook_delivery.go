package db_models

import "gorm.io/datatypes"

// WebhookDelivery deduplicates provider callbacks. The unique
// (provider, delivery_id) pair makes reprocessing a redelivered webhook a
// no-op; the raw payload is kept for investigation.
type WebhookDelivery struct {
	BaseModel
	Provider   string `gorm:"size:20;not null;uniqueIndex:ux_webhook_deliveries_provider_delivery,priority:1"`
	DeliveryID string `gorm:"size:191;not null;uniqueIndex:ux_webhook_deliveries_provider_delivery,priority:2"`

	JobToken string `gorm:"index"`
	Status   string
	Payload  datatypes.JSON `gorm:"type:jsonb"`

	ProcessedAt *int64
}
