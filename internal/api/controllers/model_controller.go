package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"artify/internal/services"
	"artify/pkg/utils"
)

type ModelController struct {
	modelService services.ModelServiceInterface
}

func NewModelController(modelService services.ModelServiceInterface) *ModelController {
	return &ModelController{
		modelService: modelService,
	}
}

// List godoc
// @Summary List the user's trained models
// @Tags Models
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/models [get]
func (m *ModelController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	models, err := m.modelService.ListModels(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, models, "")
}

// Delete godoc
// @Summary Delete a trained model
// @Description Removes the model from the provider and from the account
// @Tags Models
// @Produce json
// @Param id path string true "Model id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/models/{id} [delete]
func (m *ModelController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	modelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid model id")
		return
	}

	if err := m.modelService.DeleteModel(c.Request.Context(), userID, modelID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Model deleted")
}
