package request_models

// StartTrainingRequest mirrors the multipart form posted by the training
// form: the object-storage key of the uploaded zip, the subject's gender
// and the display name for the new model.
type StartTrainingRequest struct {
	FileKey   string `form:"fileKey"`
	Gender    string `form:"gender"`
	ModelName string `form:"modelName"`
}

type CreateUploadURLRequest struct {
	FileName string `json:"fileName" binding:"required"`
}
