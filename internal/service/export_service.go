package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
	"github.com/Muazzam0101/neurolearn-amep/pkg/export"
)

type resultsRepository interface {
	CourseResults(ctx context.Context, courseID string) ([]models.CourseResultRow, error)
}

// ExportFile is a rendered download ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a course's quiz results as CSV or PDF.
type ExportService struct {
	results resultsRepository
	courses courseRepository
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(results resultsRepository, courses courseRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		results: results,
		courses: courses,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		logger:  logger,
	}
}

var resultHeaders = []string{"Student", "Question", "Difficulty", "Correct", "Time (s)", "Hints", "Attempted At"}

// CourseResults renders the export in the requested format ("csv" or
// "pdf"). Only the owning teacher may export.
func (s *ExportService) CourseResults(ctx context.Context, teacherID int64, courseID, format string) (*ExportFile, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if course.TeacherID != teacherID {
		return nil, appErrors.ErrForbidden
	}

	rows, err := s.results.CourseResults(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	dataset := export.Dataset{Headers: resultHeaders}
	var correct int
	for _, row := range rows {
		verdict := "no"
		if row.IsCorrect {
			verdict = "yes"
			correct++
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":      row.StudentEmail,
			"Question":     row.QuestionText,
			"Difficulty":   row.Difficulty,
			"Correct":      verdict,
			"Time (s)":     strconv.Itoa(row.TimeTakenSeconds),
			"Hints":        strconv.Itoa(row.HintsUsed),
			"Attempted At": row.AttemptedAt.UTC().Format(time.RFC3339),
		})
	}

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case "csv":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("quiz-results-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case "pdf":
		summary := []string{
			fmt.Sprintf("Course: %s", course.Name),
			fmt.Sprintf("Attempts: %d, correct: %d", len(rows), correct),
			fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)),
		}
		data, err := s.pdf.Render(dataset, "Quiz Results", summary)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("quiz-results-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "Unsupported export format")
	}
}
