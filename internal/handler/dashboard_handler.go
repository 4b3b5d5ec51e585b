package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muazzam0101/neurolearn-amep/internal/service"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
	"github.com/Muazzam0101/neurolearn-amep/pkg/response"
)

// DashboardHandler serves the per-student progress summary.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary Student progress dashboard
// @Description Mastery score, difficulty recommendation, and attempt stats
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.StudentDashboard
// @Failure 401 {object} map[string]string
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dashboard, err := h.service.Summary(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dashboard)
}
