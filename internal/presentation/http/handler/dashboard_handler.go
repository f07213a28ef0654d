package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/presentation/http/dto/response"
	"github.com/sangkips/xylem-api/internal/presentation/http/middleware"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Admin returns the back office counters and sales charts
func (h *DashboardHandler) Admin(c *gin.Context) {
	stats, err := h.dashboardService.DashboardCounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// Rep returns the logged in representative's summary
func (h *DashboardHandler) Rep(c *gin.Context) {
	stats, err := h.dashboardService.RepDashboard(c.Request.Context(), middleware.CurrentRep(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
