package db_models

import "github.com/google/uuid"

type GeneratedImage struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index"`

	URL      string
	Prompt   string
	ModelRef string

	Guidance       float64
	InferenceSteps int
	OutputFormat   string
	AspectRatio    string
}
