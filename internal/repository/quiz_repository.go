package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
)

// QuizRepository handles persistence for the question bank and attempt
// history.
type QuizRepository struct {
	db *sqlx.DB
}

// NewQuizRepository creates a new repository instance.
func NewQuizRepository(db *sqlx.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

const questionColumns = `id, course_id, question_text, options, correct_answer, difficulty, hint, created_at`

// CreateQuestion persists a new question-bank entry.
func (r *QuizRepository) CreateQuestion(ctx context.Context, q *models.QuizQuestion) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO quiz_questions (id, course_id, question_text, options, correct_answer, difficulty, hint, created_at)
		VALUES (:id, :course_id, :question_text, :options, :correct_answer, :difficulty, :hint, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// FindQuestionByID returns a question-bank entry by id.
func (r *QuizRepository) FindQuestionByID(ctx context.Context, id string) (*models.QuizQuestion, error) {
	query := fmt.Sprintf(`SELECT %s FROM quiz_questions WHERE id = $1`, questionColumns)
	var q models.QuizQuestion
	if err := r.db.GetContext(ctx, &q, query, id); err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuestions returns question-bank entries matching the filter.
func (r *QuizRepository) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.QuizQuestion, error) {
	query := fmt.Sprintf(`SELECT %s FROM quiz_questions WHERE 1=1`, questionColumns)
	var args []interface{}
	argPos := 1

	if filter.CourseID != "" {
		query += fmt.Sprintf(` AND course_id = $%d`, argPos)
		args = append(args, filter.CourseID)
		argPos++
	}
	if filter.Difficulty != "" {
		query += fmt.Sprintf(` AND difficulty = $%d`, argPos)
		args = append(args, filter.Difficulty)
		argPos++
	}
	query += ` ORDER BY created_at DESC`

	var questions []models.QuizQuestion
	if err := r.db.SelectContext(ctx, &questions, query, args...); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// RandomQuestionByDifficulty returns a random question from the given
// band, excluding ids the student has already seen this session. Returns
// sql.ErrNoRows when the band has no remaining questions; the caller
// falls back to a neighbouring band.
func (r *QuizRepository) RandomQuestionByDifficulty(ctx context.Context, courseID, difficulty string, excludeIDs []string) (*models.QuizQuestion, error) {
	query := fmt.Sprintf(`SELECT %s FROM quiz_questions WHERE difficulty = $1`, questionColumns)
	args := []interface{}{difficulty}
	argPos := 2

	if courseID != "" {
		query += fmt.Sprintf(` AND course_id = $%d`, argPos)
		args = append(args, courseID)
		argPos++
	}
	if len(excludeIDs) > 0 {
		query += fmt.Sprintf(` AND id <> ALL($%d)`, argPos)
		args = append(args, pq.Array(excludeIDs))
		argPos++
	}
	query += ` ORDER BY random() LIMIT 1`

	var q models.QuizQuestion
	if err := r.db.GetContext(ctx, &q, query, args...); err != nil {
		return nil, err
	}
	return &q, nil
}

// InsertAttempt persists one graded attempt.
func (r *QuizRepository) InsertAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO quiz_attempts (id, student_id, question_id, selected_answer, is_correct, time_taken_seconds, hints_used, difficulty, created_at)
		VALUES (:id, :student_id, :question_id, :selected_answer, :is_correct, :time_taken_seconds, :hints_used, :difficulty, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, attempt); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// RecentAttempts returns the student's newest attempts, most recent
// first, capped at limit.
func (r *QuizRepository) RecentAttempts(ctx context.Context, studentID int64, limit int) ([]models.QuizAttempt, error) {
	const query = `SELECT id, student_id, question_id, selected_answer, is_correct, time_taken_seconds, hints_used, difficulty, created_at
		FROM quiz_attempts WHERE student_id = $1 ORDER BY created_at DESC LIMIT $2`
	var attempts []models.QuizAttempt
	if err := r.db.SelectContext(ctx, &attempts, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("recent attempts: %w", err)
	}
	return attempts, nil
}

// CourseResults returns every attempt against a course's questions joined
// with the student email, ordered for export.
func (r *QuizRepository) CourseResults(ctx context.Context, courseID string) ([]models.CourseResultRow, error) {
	const query = `SELECT u.email AS student_email, q.question_text, a.difficulty, a.is_correct,
			a.time_taken_seconds, a.hints_used, a.created_at AS attempted_at
		FROM quiz_attempts a
		JOIN quiz_questions q ON q.id = a.question_id
		JOIN users u ON u.id = a.student_id
		WHERE q.course_id = $1
		ORDER BY u.email ASC, a.created_at ASC`
	var rows []models.CourseResultRow
	if err := r.db.SelectContext(ctx, &rows, query, courseID); err != nil {
		return nil, fmt.Errorf("course results: %w", err)
	}
	return rows, nil
}
