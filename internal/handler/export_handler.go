package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muazzam0101/neurolearn-amep/internal/service"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
	"github.com/Muazzam0101/neurolearn-amep/pkg/response"
)

// ExportHandler streams course quiz-result exports.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// CourseResults godoc
// @Summary Export a course's quiz results
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Course ID"
// @Param format query string true "csv or pdf"
// @Success 200
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /courses/{id}/results/export [get]
func (h *ExportHandler) CourseResults(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := c.DefaultQuery("format", "csv")
	file, err := h.service.CourseResults(c.Request.Context(), claims.UserID, c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
