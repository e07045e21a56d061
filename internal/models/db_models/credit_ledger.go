package db_models

import "github.com/google/uuid"

// CreditLedger tracks per-user usage allowances. Counts are only ever
// changed through atomic conditional updates; see CreditRepository.
type CreditLedger struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	ImageGenerationCount    int `gorm:"not null;default:0"`
	MaxImageGenerationCount int `gorm:"not null;default:0"`
	ModelTrainingCount      int `gorm:"not null;default:0"`
	MaxModelTrainingCount   int `gorm:"not null;default:0"`
}
