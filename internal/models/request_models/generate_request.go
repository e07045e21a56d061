package request_models

type GenerateImageRequest struct {
	Model             string  `json:"model" binding:"required"`
	Prompt            string  `json:"prompt" binding:"required"`
	Guidance          float64 `json:"guidance"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	OutputFormat      string  `json:"output_format"`
	AspectRatio       string  `json:"aspect_ratio"`
	NumOutputs        int     `json:"num_outputs"`
}
