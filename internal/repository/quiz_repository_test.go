package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
)

func TestRandomQuestionByDifficulty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQuizRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "course_id", "question_text", "options", "correct_answer", "difficulty", "hint", "created_at"}).
		AddRow("q1", nil, "What is 2+2?", []byte(`["3","4","5","6"]`), "4", models.DifficultyEasy, "Count on your fingers.", now)
	mock.ExpectQuery("SELECT .+ FROM quiz_questions WHERE difficulty").
		WithArgs(models.DifficultyEasy).
		WillReturnRows(rows)

	q, err := repo.RandomQuestionByDifficulty(context.Background(), "", models.DifficultyEasy, nil)
	require.NoError(t, err)
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, "4", q.CorrectAnswer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRandomQuestionByDifficultyEmptyBand(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQuizRepository(db)

	mock.ExpectQuery("SELECT .+ FROM quiz_questions WHERE difficulty").
		WithArgs(models.DifficultyHard).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.RandomQuestionByDifficulty(context.Background(), "", models.DifficultyHard, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAttemptGeneratesID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQuizRepository(db)

	mock.ExpectExec("INSERT INTO quiz_attempts").WillReturnResult(sqlmock.NewResult(0, 1))

	attempt := &models.QuizAttempt{
		StudentID:        3,
		QuestionID:       "q1",
		SelectedAnswer:   "4",
		IsCorrect:        true,
		TimeTakenSeconds: 12,
		Difficulty:       models.DifficultyEasy,
	}
	err := repo.InsertAttempt(context.Background(), attempt)
	require.NoError(t, err)
	assert.NotEmpty(t, attempt.ID)
	assert.False(t, attempt.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentAttempts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQuizRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_id", "question_id", "selected_answer", "is_correct", "time_taken_seconds", "hints_used", "difficulty", "created_at"}).
		AddRow("a2", int64(3), "q2", "7", false, 30, 1, models.DifficultyMedium, now).
		AddRow("a1", int64(3), "q1", "4", true, 12, 0, models.DifficultyEasy, now.Add(-time.Minute))
	mock.ExpectQuery("SELECT .+ FROM quiz_attempts WHERE student_id").
		WithArgs(int64(3), 20).
		WillReturnRows(rows)

	attempts, err := repo.RecentAttempts(context.Background(), 3, 20)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "a2", attempts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseResults(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQuizRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"student_email", "question_text", "difficulty", "is_correct", "time_taken_seconds", "hints_used", "attempted_at"}).
		AddRow("student@example.com", "What is 2+2?", models.DifficultyEasy, true, 12, 0, now)
	mock.ExpectQuery("SELECT u.email AS student_email").
		WithArgs("course-1").
		WillReturnRows(rows)

	results, err := repo.CourseResults(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "student@example.com", results[0].StudentEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}
