package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
)

// ContentRepository handles persistence for learning materials.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates a new repository instance.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const contentColumns = `id, course_id, topic_id, title, difficulty, estimated_time, tags, notes_text, video_url, pdf_name, pdf_path, created_at`

// List returns contents matching the filter, newest first.
func (r *ContentRepository) List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error) {
	query := fmt.Sprintf(`SELECT %s FROM contents WHERE 1=1`, contentColumns)
	var args []interface{}
	argPos := 1

	if filter.CourseID != "" {
		query += fmt.Sprintf(` AND course_id = $%d`, argPos)
		args = append(args, filter.CourseID)
		argPos++
	}
	if filter.TopicID != "" {
		query += fmt.Sprintf(` AND topic_id = $%d`, argPos)
		args = append(args, filter.TopicID)
		argPos++
	}
	query += ` ORDER BY created_at DESC`

	var contents []models.Content
	if err := r.db.SelectContext(ctx, &contents, query, args...); err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	return contents, nil
}

// FindByID returns a content entry by id.
func (r *ContentRepository) FindByID(ctx context.Context, id string) (*models.Content, error) {
	query := fmt.Sprintf(`SELECT %s FROM contents WHERE id = $1`, contentColumns)
	var content models.Content
	if err := r.db.GetContext(ctx, &content, query, id); err != nil {
		return nil, err
	}
	return &content, nil
}

// Create persists a new content entry.
func (r *ContentRepository) Create(ctx context.Context, content *models.Content) error {
	if content.ID == "" {
		content.ID = uuid.NewString()
	}
	if content.CreatedAt.IsZero() {
		content.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO contents (id, course_id, topic_id, title, difficulty, estimated_time, tags, notes_text, video_url, pdf_name, pdf_path, created_at)
		VALUES (:id, :course_id, :topic_id, :title, :difficulty, :estimated_time, :tags, :notes_text, :video_url, :pdf_name, :pdf_path, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, content); err != nil {
		return fmt.Errorf("create content: %w", err)
	}
	return nil
}

// Delete removes a content entry and returns its stored PDF path so the
// caller can remove the file.
func (r *ContentRepository) Delete(ctx context.Context, id string) (string, error) {
	const query = `DELETE FROM contents WHERE id = $1 RETURNING pdf_path`
	var pdfPath string
	if err := r.db.QueryRowxContext(ctx, query, id).Scan(&pdfPath); err != nil {
		return "", err
	}
	return pdfPath, nil
}
