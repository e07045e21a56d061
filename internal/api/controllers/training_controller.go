package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artify/internal/models/request_models"
	"artify/internal/services"
	"artify/pkg/utils"
)

// TrainingController keeps the original bare response shapes of the
// training form endpoint: clients branch on {"success": true} and on the
// exact error strings, so these bodies are not wrapped in APIResponse.
type TrainingController struct {
	trainingService services.TrainingServiceInterface
}

func NewTrainingController(trainingService services.TrainingServiceInterface) *TrainingController {
	return &TrainingController{
		trainingService: trainingService,
	}
}

// Train godoc
// @Summary Start a model training run
// @Description Registers a private model and submits a training job for the uploaded archive
// @Tags Training
// @Accept mpfd
// @Produce json
// @Param fileKey formData string true "Object storage key of the training zip"
// @Param modelName formData string true "Display name for the model"
// @Param gender formData string false "Subject gender"
// @Success 201 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Router /api/train [post]
func (t *TrainingController) Train(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	req := request_models.StartTrainingRequest{
		FileKey:   c.PostForm("fileKey"),
		Gender:    c.PostForm("gender"),
		ModelName: c.PostForm("modelName"),
	}
	if req.FileKey == "" || req.ModelName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required files!"})
		return
	}

	if err := t.trainingService.StartTraining(c.Request.Context(), userID, req); err != nil {
		switch {
		case errors.Is(err, utils.ErrInsufficientCredits):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "No credits left for training"})
		case errors.Is(err, utils.ErrCreditRowMissing):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting user credits!"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start training!"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}
