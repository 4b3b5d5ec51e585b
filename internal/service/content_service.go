package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
	"github.com/Muazzam0101/neurolearn-amep/pkg/storage"
)

type contentRepository interface {
	List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error)
	FindByID(ctx context.Context, id string) (*models.Content, error)
	Create(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id string) (string, error)
}

type contentStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

// ContentUpload is the parsed multipart payload for creating content.
// PDF is nil when the item carries notes or a video link only.
type ContentUpload struct {
	CourseID      string `validate:"required"`
	TopicID       string `validate:"required"`
	Title         string `validate:"required"`
	Difficulty    string `validate:"required,oneof=easy medium hard"`
	EstimatedTime int    `validate:"min=0"`
	Tags          []string
	NotesText     string
	VideoURL      string

	PDFName string
	PDFSize int64
	PDF     io.Reader
}

// SignedDownload points a client at a short-lived file URL.
type SignedDownload struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ContentService manages learning materials and their uploaded files.
type ContentService struct {
	repo        contentRepository
	courses     courseRepository
	store       contentStorage
	signer      *storage.SignedURLSigner
	validator   *validator.Validate
	logger      *zap.Logger
	maxFileSize int64
}

// NewContentService constructs a ContentService instance.
func NewContentService(repo contentRepository, courses courseRepository, store contentStorage, signer *storage.SignedURLSigner, validate *validator.Validate, logger *zap.Logger, maxFileSize int64) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024
	}
	return &ContentService{
		repo:        repo,
		courses:     courses,
		store:       store,
		signer:      signer,
		validator:   validate,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

// List returns contents matching the filter.
func (s *ContentService) List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error) {
	contents, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if contents == nil {
		contents = []models.Content{}
	}
	return contents, nil
}

// Create validates the upload and persists the content entry. A PDF, when
// present, must be application/pdf and within the size limit; it is
// stored under <course_id>/<uuid>.pdf.
func (s *ContentService) Create(ctx context.Context, upload ContentUpload) (*models.Content, error) {
	if err := s.validator.Struct(upload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	topic, err := s.courses.FindTopicByID(ctx, upload.TopicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Topic not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if topic.CourseID != upload.CourseID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Topic does not belong to course")
	}

	content := &models.Content{
		ID:            uuid.NewString(),
		CourseID:      upload.CourseID,
		TopicID:       upload.TopicID,
		Title:         upload.Title,
		Difficulty:    upload.Difficulty,
		EstimatedTime: upload.EstimatedTime,
		Tags:          models.JSONStrings(upload.Tags),
		NotesText:     upload.NotesText,
		VideoURL:      upload.VideoURL,
	}

	if upload.PDF != nil {
		if upload.PDFSize > s.maxFileSize {
			return nil, appErrors.Clone(appErrors.ErrValidation, "PDF exceeds the 10 MB limit")
		}
		if !strings.EqualFold(filepath.Ext(upload.PDFName), ".pdf") {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Only PDF files are accepted")
		}

		relPath := fmt.Sprintf("%s/%s.pdf", upload.CourseID, content.ID)
		if _, err := s.store.SaveStream(relPath, io.LimitReader(upload.PDF, s.maxFileSize+1)); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		content.PDFName = upload.PDFName
		content.PDFPath = relPath
	}

	if err := s.repo.Create(ctx, content); err != nil {
		if content.PDFPath != "" {
			if cleanupErr := s.store.Delete(content.PDFPath); cleanupErr != nil {
				s.logger.Warn("failed to remove orphan upload", zap.String("path", content.PDFPath), zap.Error(cleanupErr))
			}
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	s.logger.Info("content created",
		zap.String("content_id", content.ID),
		zap.String("course_id", content.CourseID),
		zap.Bool("has_pdf", content.PDFPath != ""))
	return content, nil
}

// SignedURL issues a short-lived download link for a content's PDF.
func (s *ContentService) SignedURL(ctx context.Context, contentID string) (*SignedDownload, error) {
	content, err := s.repo.FindByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Content not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if content.PDFPath == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Content has no file")
	}

	token, expiresAt, err := s.signer.Generate(content.ID, content.PDFPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	return &SignedDownload{
		URL:       fmt.Sprintf("/api/files/contents?token=%s", token),
		ExpiresAt: expiresAt,
	}, nil
}

// OpenByToken validates a signed token and opens the referenced file.
// The caller owns the returned handle.
func (s *ContentService) OpenByToken(token string) (*os.File, string, error) {
	contentID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrForbidden, "Invalid or expired link")
	}

	file, err := s.store.Open(relPath)
	if err != nil {
		s.logger.Warn("signed link referenced missing file",
			zap.String("content_id", contentID), zap.String("path", relPath), zap.Error(err))
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "File not found")
	}
	return file, filepath.Base(relPath), nil
}
