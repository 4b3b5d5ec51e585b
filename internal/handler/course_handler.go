package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	"github.com/Muazzam0101/neurolearn-amep/internal/service"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
	"github.com/Muazzam0101/neurolearn-amep/pkg/response"
)

// CourseHandler exposes the course and topic catalog.
type CourseHandler struct {
	service *service.CourseService
}

// NewCourseHandler creates a new handler.
func NewCourseHandler(svc *service.CourseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {array} models.Course
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	// Teachers see their own catalog, students the whole one.
	var teacherID int64
	if claims.Role == models.RoleTeacher {
		teacherID = claims.UserID
	}

	courses, err := h.service.List(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Get godoc
// @Summary Get a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} map[string]string
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Create a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body models.CreateCourseRequest true "Course payload"
// @Success 201 {object} models.Course
// @Failure 400 {object} map[string]string
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, appErrors.ErrValidation.Message))
		return
	}

	course, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Delete godoc
// @Summary Delete a course and everything under it
// @Tags Courses
// @Param id path string true "Course ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListTopics godoc
// @Summary List topics
// @Tags Courses
// @Produce json
// @Param course_id query string false "Course ID"
// @Success 200 {array} models.Topic
// @Router /topics [get]
func (h *CourseHandler) ListTopics(c *gin.Context) {
	topics, err := h.service.ListTopics(c.Request.Context(), c.Query("course_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, topics)
}

// CreateTopic godoc
// @Summary Add a topic to a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body models.CreateTopicRequest true "Topic payload"
// @Success 201 {object} models.Topic
// @Failure 400 {object} map[string]string
// @Router /topics [post]
func (h *CourseHandler) CreateTopic(c *gin.Context) {
	var req models.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, appErrors.ErrValidation.Message))
		return
	}

	topic, err := h.service.CreateTopic(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, topic)
}
