package response_models

type DashboardStats struct {
	ModelCount int64 `json:"model_count"`
	ImageCount int64 `json:"image_count"`

	ImageCreditsLeft int `json:"image_credits_left"`
	ImageCreditsMax  int `json:"image_credits_max"`
	TrainCreditsLeft int `json:"train_credits_left"`
	TrainCreditsMax  int `json:"train_credits_max"`
}
