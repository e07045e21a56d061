package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"artify/internal/models/request_models"
	"artify/internal/services"
	"artify/pkg/utils"
)

type ImageController struct {
	imageService services.ImageServiceInterface
}

func NewImageController(imageService services.ImageServiceInterface) *ImageController {
	return &ImageController{
		imageService: imageService,
	}
}

// Generate godoc
// @Summary Generate images with a trained model
// @Tags Images
// @Accept json
// @Produce json
// @Param request body request_models.GenerateImageRequest true "Generation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Router /api/image/generate [post]
func (i *ImageController) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	urls, err := i.imageService.Generate(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"images": urls}, "")
}

// Gallery godoc
// @Summary List the user's generated images
// @Tags Images
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/image/gallery [get]
func (i *ImageController) Gallery(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	images, err := i.imageService.ListGallery(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"images": images}, "")
}

// Delete godoc
// @Summary Delete a generated image
// @Tags Images
// @Produce json
// @Param id path string true "Image id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/image/{id} [delete]
func (i *ImageController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid image id")
		return
	}

	if err := i.imageService.DeleteImage(c.Request.Context(), userID, imageID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Image deleted")
}
