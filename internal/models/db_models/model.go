package db_models

import "github.com/google/uuid"

type TrainingStatus string

const (
	TrainingStatusQueued     TrainingStatus = "queued"
	TrainingStatusStarting   TrainingStatus = "starting"
	TrainingStatusProcessing TrainingStatus = "processing"
	TrainingStatusSucceeded  TrainingStatus = "succeeded"
	TrainingStatusFailed     TrainingStatus = "failed"
	TrainingStatusCanceled   TrainingStatus = "canceled"
)

// IsTerminal reports whether no further webhook deliveries are expected.
func (s TrainingStatus) IsTerminal() bool {
	return s == TrainingStatusSucceeded || s == TrainingStatusFailed || s == TrainingStatusCanceled
}

// Model is one fine-tuning job and its resulting personalized model.
// JobToken is the opaque correlation token embedded in the webhook callback
// URL; callbacks are matched by it alone, never by user_id+model_name.
type Model struct {
	BaseModel
	ModelID  string    `gorm:"index"`
	UserID   uuid.UUID `gorm:"type:uuid;index"`
	JobToken string    `gorm:"uniqueIndex"`

	Gender    string
	ModelName string

	TrainingStatus TrainingStatus `gorm:"index"`
	TriggerWord    string
	TrainingSteps  int
	TrainingID     string

	// Set by the webhook reconciler on success.
	Version      string
	TrainingTime float64

	// Object-storage key of the uploaded training archive; deleted once a
	// terminal callback arrives.
	FileKey string
}
