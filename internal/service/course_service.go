package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, teacherID int64) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	DeleteCascade(ctx context.Context, courseID string) ([]string, error)
	ListTopics(ctx context.Context, courseID string) ([]models.Topic, error)
	FindTopicByID(ctx context.Context, id string) (*models.Topic, error)
	CreateTopic(ctx context.Context, topic *models.Topic) error
}

type fileRemover interface {
	Delete(filename string) error
}

// CourseService manages the course and topic catalog.
type CourseService struct {
	repo      courseRepository
	files     fileRemover
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(repo courseRepository, files fileRemover, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CourseService{repo: repo, files: files, validator: validate, logger: logger}
}

// List returns the teacher's courses, or all courses when teacherID is 0.
func (s *CourseService) List(ctx context.Context, teacherID int64) ([]models.Course, error) {
	courses, err := s.repo.List(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// Get returns a single course.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	return course, nil
}

// Create registers a course owned by the calling teacher.
func (s *CourseService) Create(ctx context.Context, teacherID int64, req models.CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	course := &models.Course{
		TeacherID:   teacherID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	s.logger.Info("course created", zap.String("course_id", course.ID), zap.Int64("teacher_id", teacherID))
	return course, nil
}

// Delete removes a course with everything under it. Only the owning
// teacher may delete. Stored PDFs are removed after the transaction
// commits.
func (s *CourseService) Delete(ctx context.Context, teacherID int64, courseID string) error {
	course, err := s.Get(ctx, courseID)
	if err != nil {
		return err
	}
	if course.TeacherID != teacherID {
		return appErrors.ErrForbidden
	}

	pdfPaths, err := s.repo.DeleteCascade(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	for _, path := range pdfPaths {
		if err := s.files.Delete(path); err != nil {
			s.logger.Warn("failed to remove stored file", zap.String("path", path), zap.Error(err))
		}
	}

	s.logger.Info("course deleted", zap.String("course_id", courseID), zap.Int("files_removed", len(pdfPaths)))
	return nil
}

// ListTopics returns topics, scoped to a course when courseID is set.
func (s *CourseService) ListTopics(ctx context.Context, courseID string) ([]models.Topic, error) {
	topics, err := s.repo.ListTopics(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if topics == nil {
		topics = []models.Topic{}
	}
	return topics, nil
}

// CreateTopic adds a topic to an existing course. Prerequisites must
// reference topics already in the same course.
func (s *CourseService) CreateTopic(ctx context.Context, req models.CreateTopicRequest) (*models.Topic, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	if _, err := s.Get(ctx, req.CourseID); err != nil {
		return nil, err
	}

	if len(req.Prerequisites) > 0 {
		existing, err := s.repo.ListTopics(ctx, req.CourseID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		known := make(map[string]struct{}, len(existing))
		for _, t := range existing {
			known[t.ID] = struct{}{}
		}
		for _, prereq := range req.Prerequisites {
			if _, ok := known[prereq]; !ok {
				return nil, appErrors.Clone(appErrors.ErrValidation, "Unknown prerequisite topic")
			}
		}
	}

	topic := &models.Topic{
		CourseID:      req.CourseID,
		Name:          req.Name,
		Description:   req.Description,
		Prerequisites: models.JSONStrings(req.Prerequisites),
	}
	if err := s.repo.CreateTopic(ctx, topic); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	s.logger.Info("topic created", zap.String("topic_id", topic.ID), zap.String("course_id", topic.CourseID))
	return topic, nil
}
