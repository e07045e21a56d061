package controllers

import (
	"github.com/gin-gonic/gin"

	"artify/internal/services"
	"artify/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardController(dashboardService services.DashboardServiceInterface) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// Stats godoc
// @Summary Dashboard statistics for the current user
// @Description Model count, image count and remaining credits
// @Tags Dashboard
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/dashboard [get]
func (d *DashboardController) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := d.dashboardService.GetStats(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, stats, "")
}
