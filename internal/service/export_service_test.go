package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
)

type mockResultsRepo struct {
	rows []models.CourseResultRow
}

func (m *mockResultsRepo) CourseResults(ctx context.Context, courseID string) ([]models.CourseResultRow, error) {
	return m.rows, nil
}

type mockCourseRepo struct {
	course  *models.Course
	topics  []models.Topic
	findErr error
}

func (m *mockCourseRepo) List(ctx context.Context, teacherID int64) ([]models.Course, error) {
	if m.course == nil {
		return nil, nil
	}
	return []models.Course{*m.course}, nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.course == nil || m.course.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.course, nil
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	course.ID = "c1"
	m.course = course
	return nil
}

func (m *mockCourseRepo) DeleteCascade(ctx context.Context, courseID string) ([]string, error) {
	return nil, nil
}

func (m *mockCourseRepo) ListTopics(ctx context.Context, courseID string) ([]models.Topic, error) {
	return m.topics, nil
}

func (m *mockCourseRepo) FindTopicByID(ctx context.Context, id string) (*models.Topic, error) {
	for i := range m.topics {
		if m.topics[i].ID == id {
			return &m.topics[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) CreateTopic(ctx context.Context, topic *models.Topic) error {
	topic.ID = "t1"
	m.topics = append(m.topics, *topic)
	return nil
}

func TestExportCourseResultsCSV(t *testing.T) {
	courses := &mockCourseRepo{course: &models.Course{ID: "c1", TeacherID: 2, Name: "Algebra I"}}
	results := &mockResultsRepo{rows: []models.CourseResultRow{
		{StudentEmail: "student@example.com", QuestionText: "2+2?", Difficulty: "easy", IsCorrect: true, TimeTakenSeconds: 12, AttemptedAt: time.Now()},
	}}
	svc := NewExportService(results, courses, zap.NewNop())

	file, err := svc.CourseResults(context.Background(), 2, "c1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	body := string(file.Data)
	assert.Contains(t, body, "Student,Question,Difficulty")
	assert.Contains(t, body, "student@example.com")
	assert.Contains(t, body, "2+2?")
}

func TestExportCourseResultsPDF(t *testing.T) {
	courses := &mockCourseRepo{course: &models.Course{ID: "c1", TeacherID: 2, Name: "Algebra I"}}
	results := &mockResultsRepo{rows: []models.CourseResultRow{
		{StudentEmail: "student@example.com", QuestionText: "2+2?", Difficulty: "easy", IsCorrect: false, AttemptedAt: time.Now()},
	}}
	svc := NewExportService(results, courses, zap.NewNop())

	file, err := svc.CourseResults(context.Background(), 2, "c1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestExportWrongOwner(t *testing.T) {
	courses := &mockCourseRepo{course: &models.Course{ID: "c1", TeacherID: 2}}
	svc := NewExportService(&mockResultsRepo{}, courses, zap.NewNop())

	_, err := svc.CourseResults(context.Background(), 99, "c1", "csv")
	require.Error(t, err)
	assert.Equal(t, 403, appErrors.FromError(err).Status)
}

func TestExportUnknownCourse(t *testing.T) {
	svc := NewExportService(&mockResultsRepo{}, &mockCourseRepo{}, zap.NewNop())

	_, err := svc.CourseResults(context.Background(), 2, "ghost", "csv")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Course not found", appErr.Message)
}

func TestExportCourseLookupFailure(t *testing.T) {
	courses := &mockCourseRepo{findErr: assert.AnError}
	svc := NewExportService(&mockResultsRepo{}, courses, zap.NewNop())

	_, err := svc.CourseResults(context.Background(), 2, "c1", "csv")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 500, appErr.Status)
	assert.Equal(t, "Server error", appErr.Message)
}

func TestExportUnsupportedFormat(t *testing.T) {
	courses := &mockCourseRepo{course: &models.Course{ID: "c1", TeacherID: 2}}
	svc := NewExportService(&mockResultsRepo{}, courses, zap.NewNop())

	_, err := svc.CourseResults(context.Background(), 2, "c1", "xlsx")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}
