package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
)

// CourseRepository handles persistence for courses and topics.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new repository instance.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns all courses, optionally restricted to one teacher.
func (r *CourseRepository) List(ctx context.Context, teacherID int64) ([]models.Course, error) {
	query := `SELECT id, teacher_id, course_name, course_description, created_at, updated_at FROM courses`
	var args []interface{}
	if teacherID > 0 {
		query += ` WHERE teacher_id = $1`
		args = append(args, teacherID)
	}
	query += ` ORDER BY created_at DESC`

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindByID returns a course by id.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, teacher_id, course_name, course_description, created_at, updated_at FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create persists a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	const query = `INSERT INTO courses (id, teacher_id, course_name, course_description, created_at, updated_at)
		VALUES (:id, :teacher_id, :course_name, :course_description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// DeleteCascade removes a course along with its topics and contents in
// one transaction, returning the stored PDF paths so the caller can
// remove the files afterwards. File removal stays outside the
// transaction: losing an orphan file beats holding locks on disk IO.
func (r *CourseRepository) DeleteCascade(ctx context.Context, courseID string) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete course: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var pdfPaths []string
	if err := tx.SelectContext(ctx, &pdfPaths,
		`SELECT pdf_path FROM contents WHERE course_id = $1 AND pdf_path <> ''`, courseID); err != nil {
		return nil, fmt.Errorf("collect course files: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM quiz_questions WHERE course_id = $1`, courseID); err != nil {
		return nil, fmt.Errorf("delete course questions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM contents WHERE course_id = $1`, courseID); err != nil {
		return nil, fmt.Errorf("delete course contents: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM topics WHERE course_id = $1`, courseID); err != nil {
		return nil, fmt.Errorf("delete course topics: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return nil, fmt.Errorf("delete course: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete course rows: %w", err)
	}
	if rows == 0 {
		return nil, sql.ErrNoRows
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete course: %w", err)
	}
	return pdfPaths, nil
}

// ListTopics returns topics, optionally restricted to one course.
func (r *CourseRepository) ListTopics(ctx context.Context, courseID string) ([]models.Topic, error) {
	query := `SELECT id, course_id, topic_name, topic_description, prerequisites, created_at FROM topics`
	var args []interface{}
	if courseID != "" {
		query += ` WHERE course_id = $1`
		args = append(args, courseID)
	}
	query += ` ORDER BY created_at ASC`

	var topics []models.Topic
	if err := r.db.SelectContext(ctx, &topics, query, args...); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return topics, nil
}

// FindTopicByID returns a topic by id.
func (r *CourseRepository) FindTopicByID(ctx context.Context, id string) (*models.Topic, error) {
	const query = `SELECT id, course_id, topic_name, topic_description, prerequisites, created_at FROM topics WHERE id = $1`
	var topic models.Topic
	if err := r.db.GetContext(ctx, &topic, query, id); err != nil {
		return nil, err
	}
	return &topic, nil
}

// CreateTopic persists a new topic.
func (r *CourseRepository) CreateTopic(ctx context.Context, topic *models.Topic) error {
	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO topics (id, course_id, topic_name, topic_description, prerequisites, created_at)
		VALUES (:id, :course_id, :topic_name, :topic_description, :prerequisites, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, topic); err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}
