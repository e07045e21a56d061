package response_models

type ModelResponse struct {
	ID             string  `json:"id"`
	ModelID        string  `json:"model_id"`
	ModelName      string  `json:"model_name"`
	Gender         string  `json:"gender"`
	TrainingStatus string  `json:"training_status"`
	TriggerWord    string  `json:"trigger_word"`
	TrainingSteps  int     `json:"training_steps"`
	Version        string  `json:"version,omitempty"`
	TrainingTime   float64 `json:"training_time,omitempty"`
	CreatedAt      int64   `json:"created_at"`
}

type ModelListResponse struct {
	Models []ModelResponse `json:"models"`
	Count  int64           `json:"count"`
}

type UploadURLResponse struct {
	SignedURL string `json:"signedUrl"`
	FileKey   string `json:"fileKey"`
	Error     string `json:"error,omitempty"`
}

type GeneratedImageResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Prompt    string `json:"prompt"`
	ModelRef  string `json:"model"`
	CreatedAt int64  `json:"created_at"`
}
