package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artify/internal/models/request_models"
	"artify/internal/models/response_models"
	"artify/internal/services"
)

// UploadController returns the bare {signedUrl, fileKey, error} body the
// upload form consumes directly.
type UploadController struct {
	uploadService services.UploadServiceInterface
}

func NewUploadController(uploadService services.UploadServiceInterface) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

// CreateUploadURL godoc
// @Summary Issue a pre-signed upload URL for a training archive
// @Tags Training
// @Accept json
// @Produce json
// @Param request body request_models.CreateUploadURLRequest true "File name payload"
// @Success 200 {object} response_models.UploadURLResponse
// @Router /api/train/upload-url [post]
func (u *UploadController) CreateUploadURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response_models.UploadURLResponse{Error: "fileName is required"})
		return
	}

	resp := u.uploadService.CreateUploadURL(c.Request.Context(), userID, req.FileName)
	if resp.Error != "" {
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
