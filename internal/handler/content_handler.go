package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	"github.com/Muazzam0101/neurolearn-amep/internal/service"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
	"github.com/Muazzam0101/neurolearn-amep/pkg/response"
)

// ContentHandler exposes learning materials and their file downloads.
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler creates a new handler.
func NewContentHandler(svc *service.ContentService) *ContentHandler {
	return &ContentHandler{service: svc}
}

// List godoc
// @Summary List contents
// @Tags Contents
// @Produce json
// @Param course_id query string false "Course ID"
// @Param topic_id query string false "Topic ID"
// @Success 200 {array} models.Content
// @Router /contents [get]
func (h *ContentHandler) List(c *gin.Context) {
	contents, err := h.service.List(c.Request.Context(), models.ContentFilter{
		CourseID: c.Query("course_id"),
		TopicID:  c.Query("topic_id"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contents)
}

// Create godoc
// @Summary Create content
// @Description Multipart form: metadata fields plus an optional PDF upload
// @Tags Contents
// @Accept mpfd
// @Produce json
// @Success 201 {object} models.Content
// @Failure 400 {object} map[string]string
// @Router /contents [post]
func (h *ContentHandler) Create(c *gin.Context) {
	estimated, _ := strconv.Atoi(c.PostForm("estimated_time"))

	upload := service.ContentUpload{
		CourseID:      c.PostForm("course_id"),
		TopicID:       c.PostForm("topic_id"),
		Title:         c.PostForm("title"),
		Difficulty:    c.PostForm("difficulty"),
		EstimatedTime: estimated,
		NotesText:     c.PostForm("notes_text"),
		VideoURL:      c.PostForm("video_url"),
	}
	if raw := c.PostForm("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				upload.Tags = append(upload.Tags, trimmed)
			}
		}
	}

	fileHeader, err := c.FormFile("pdf")
	if err == nil && fileHeader != nil {
		contentType := fileHeader.Header.Get("Content-Type")
		if contentType != "" && contentType != "application/pdf" {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Only PDF files are accepted"))
			return
		}
		file, openErr := fileHeader.Open()
		if openErr != nil {
			response.Error(c, appErrors.Wrap(openErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message))
			return
		}
		defer file.Close() //nolint:errcheck
		upload.PDF = file
		upload.PDFName = fileHeader.Filename
		upload.PDFSize = fileHeader.Size
	}

	content, err := h.service.Create(c.Request.Context(), upload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, content)
}

// SignedURL godoc
// @Summary Issue a short-lived download link for a content's PDF
// @Tags Contents
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} service.SignedDownload
// @Failure 404 {object} map[string]string
// @Router /contents/{id}/url [get]
func (h *ContentHandler) SignedURL(c *gin.Context) {
	download, err := h.service.SignedURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, download)
}

// ServeFile godoc
// @Summary Serve an uploaded PDF behind a signed token
// @Tags Contents
// @Produce application/pdf
// @Param token query string true "Signed download token"
// @Success 200
// @Failure 403 {object} map[string]string
// @Router /files/contents [get]
func (h *ContentHandler) ServeFile(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "Token is required"))
		return
	}

	file, name, err := h.service.OpenByToken(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+name+`"`)
	if _, err := io.Copy(c.Writer, file); err != nil {
		// Headers are gone; nothing left to do but log via gin's recovery.
		_ = c.Error(err)
	}
}
