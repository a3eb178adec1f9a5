package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/praxisapp/praxis/internal/domain/services"
	"github.com/praxisapp/praxis/pkg/logger"
)

// DashboardHandler serves the aggregate statistics endpoint.
type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           *logger.Logger
}

func NewDashboardHandler(dashboardService *services.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err, "Stats not available")
		return
	}
	respondOK(c, gin.H{"stats": stats})
}

func (h *DashboardHandler) Activity(c *gin.Context) {
	activity, err := h.dashboardService.Activity(c.Request.Context())
	if err != nil {
		respondRepoError(c, h.logger, err, "Activity not available")
		return
	}
	respondOK(c, gin.H{"activity": activity})
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.Stats)
	rg.GET("/dashboard/activity", h.Activity)
}
