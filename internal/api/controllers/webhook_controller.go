package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"artify/internal/services"
	"artify/pkg/utils"
)

// WebhookController answers the provider in the bare string bodies it
// expects; every outcome except signature and lookup failures is a 200 so
// the provider stops redelivering.
type WebhookController struct {
	webhookService services.WebhookServiceInterface
	logger         *zap.Logger
}

func NewWebhookController(webhookService services.WebhookServiceInterface, logger *zap.Logger) *WebhookController {
	return &WebhookController{
		webhookService: webhookService,
		logger:         logger,
	}
}

// TrainingCallback godoc
// @Summary Training status webhook
// @Description Receives signed training status deliveries from the inference provider
// @Tags Webhooks
// @Accept json
// @Produce plain
// @Param token query string true "Job token issued at kickoff"
// @Success 200 {string} string "Ok"
// @Failure 401 {string} string "Invalid signature"
// @Router /api/webhooks/training [post]
func (w *WebhookController) TrainingCallback(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal server error!")
		return
	}

	cb := services.TrainingCallback{
		DeliveryID:      c.GetHeader("webhook-id"),
		Timestamp:       c.GetHeader("webhook-timestamp"),
		SignatureHeader: c.GetHeader("webhook-signature"),
		JobToken:        c.Query("token"),
		Body:            body,
	}

	if err := w.webhookService.ProcessTrainingCallback(c.Request.Context(), cb); err != nil {
		switch {
		case errors.Is(err, utils.ErrSignatureInvalid):
			c.String(http.StatusUnauthorized, "Invalid signature")
		case errors.Is(err, utils.ErrModelNotFound), errors.Is(err, utils.ErrAccountNotFound):
			c.String(http.StatusUnauthorized, "User not found")
		default:
			w.logger.Error("processing training callback",
				zap.String("delivery_id", cb.DeliveryID), zap.Error(err))
			c.String(http.StatusInternalServerError, "Internal server error!")
		}
		return
	}

	c.String(http.StatusOK, "Ok")
}
