package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	"github.com/Muazzam0101/neurolearn-amep/internal/service"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
	"github.com/Muazzam0101/neurolearn-amep/pkg/response"
)

// QuizHandler exposes the question bank and the adaptive quiz flow.
type QuizHandler struct {
	service *service.QuizService
}

// NewQuizHandler creates a new handler.
func NewQuizHandler(svc *service.QuizService) *QuizHandler {
	return &QuizHandler{service: svc}
}

// CreateQuestion godoc
// @Summary Add a question to the bank
// @Tags Quiz
// @Accept json
// @Produce json
// @Param payload body models.CreateQuestionRequest true "Question payload"
// @Success 201 {object} models.QuizQuestion
// @Failure 400 {object} map[string]string
// @Router /questions [post]
func (h *QuizHandler) CreateQuestion(c *gin.Context) {
	var req models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, appErrors.ErrValidation.Message))
		return
	}

	question, err := h.service.CreateQuestion(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, question)
}

// ListQuestions godoc
// @Summary List bank questions with answers
// @Tags Quiz
// @Produce json
// @Param course_id query string false "Course ID"
// @Param difficulty query string false "Difficulty band"
// @Success 200 {array} models.QuizQuestion
// @Router /questions [get]
func (h *QuizHandler) ListQuestions(c *gin.Context) {
	questions, err := h.service.ListQuestions(c.Request.Context(), models.QuestionFilter{
		CourseID:   c.Query("course_id"),
		Difficulty: c.Query("difficulty"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, questions)
}

// NextQuestion godoc
// @Summary Pick the next question for the calling student
// @Description Difficulty adapts to the student's mastery score
// @Tags Quiz
// @Produce json
// @Param course_id query string false "Course ID"
// @Success 200 {object} models.QuestionView
// @Failure 404 {object} map[string]string
// @Router /quiz/next [get]
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	view, err := h.service.NextQuestion(c.Request.Context(), claims.UserID, c.Query("course_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// SubmitAttempt godoc
// @Summary Submit an answer for grading
// @Tags Quiz
// @Accept json
// @Produce json
// @Param payload body models.SubmitAttemptRequest true "Attempt payload"
// @Success 201 {object} models.AttemptResult
// @Failure 400 {object} map[string]string
// @Router /quiz/attempts [post]
func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, appErrors.ErrValidation.Message))
		return
	}

	result, err := h.service.SubmitAttempt(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
