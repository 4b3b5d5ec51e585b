package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
)

type mockQuizRepo struct {
	questions       map[string]*models.QuizQuestion
	byDifficulty    map[string]*models.QuizQuestion
	recent          []models.QuizAttempt
	recentErr       error
	inserted        []*models.QuizAttempt
	randomRequested []string
}

func (m *mockQuizRepo) CreateQuestion(ctx context.Context, q *models.QuizQuestion) error {
	if m.questions == nil {
		m.questions = make(map[string]*models.QuizQuestion)
	}
	if q.ID == "" {
		q.ID = "generated"
	}
	m.questions[q.ID] = q
	return nil
}

func (m *mockQuizRepo) FindQuestionByID(ctx context.Context, id string) (*models.QuizQuestion, error) {
	q, ok := m.questions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return q, nil
}

func (m *mockQuizRepo) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.QuizQuestion, error) {
	var out []models.QuizQuestion
	for _, q := range m.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (m *mockQuizRepo) RandomQuestionByDifficulty(ctx context.Context, courseID, difficulty string, excludeIDs []string) (*models.QuizQuestion, error) {
	m.randomRequested = append(m.randomRequested, difficulty)
	q, ok := m.byDifficulty[difficulty]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return q, nil
}

func (m *mockQuizRepo) InsertAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	attempt.ID = "attempt-1"
	m.inserted = append(m.inserted, attempt)
	return nil
}

func (m *mockQuizRepo) RecentAttempts(ctx context.Context, studentID int64, limit int) ([]models.QuizAttempt, error) {
	if m.recentErr != nil {
		return nil, m.recentErr
	}
	return m.recent, nil
}

type mockInvalidator struct {
	students []int64
}

func (m *mockInvalidator) Invalidate(ctx context.Context, studentID int64) {
	m.students = append(m.students, studentID)
}

func newQuizService(repo *mockQuizRepo, inv *mockInvalidator) *QuizService {
	return NewQuizService(repo, inv, validator.New(), zap.NewNop(), 20)
}

func attempts(correct, wrong, hintsPerCorrect int) []models.QuizAttempt {
	var out []models.QuizAttempt
	for i := 0; i < correct; i++ {
		out = append(out, models.QuizAttempt{IsCorrect: true, HintsUsed: hintsPerCorrect})
	}
	for i := 0; i < wrong; i++ {
		out = append(out, models.QuizAttempt{IsCorrect: false})
	}
	return out
}

func TestMasteryScoreDefaultsToMedium(t *testing.T) {
	assert.Equal(t, 50.0, MasteryScore(nil))
	assert.Equal(t, models.DifficultyMedium, DifficultyForMastery(MasteryScore(nil)))
}

func TestMasteryScoreHintPenalty(t *testing.T) {
	// Ten correct with two hints each: credit 0.8 -> score 80.
	score := MasteryScore(attempts(10, 0, 2))
	assert.InDelta(t, 80.0, score, 0.001)
	assert.Equal(t, models.DifficultyHard, DifficultyForMastery(score))
}

func TestMasteryScoreBands(t *testing.T) {
	assert.Equal(t, models.DifficultyEasy, DifficultyForMastery(MasteryScore(attempts(3, 7, 0))))
	assert.Equal(t, models.DifficultyMedium, DifficultyForMastery(MasteryScore(attempts(5, 5, 0))))
	assert.Equal(t, models.DifficultyHard, DifficultyForMastery(MasteryScore(attempts(9, 1, 0))))
}

func TestNextQuestionStripsAnswer(t *testing.T) {
	repo := &mockQuizRepo{
		byDifficulty: map[string]*models.QuizQuestion{
			models.DifficultyMedium: {ID: "q1", QuestionText: "Q?", Options: models.JSONStrings{"a", "b"}, CorrectAnswer: "a", Difficulty: models.DifficultyMedium, Hint: "think"},
		},
	}
	svc := newQuizService(repo, &mockInvalidator{})

	view, err := svc.NextQuestion(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "q1", view.ID)
	assert.Equal(t, "think", view.Hint)
	assert.Equal(t, []string{models.DifficultyMedium}, repo.randomRequested)
}

func TestNextQuestionFallsBackAcrossBands(t *testing.T) {
	repo := &mockQuizRepo{
		recent: attempts(9, 1, 0), // hard band
		byDifficulty: map[string]*models.QuizQuestion{
			models.DifficultyEasy: {ID: "q-easy", Difficulty: models.DifficultyEasy, Options: models.JSONStrings{"a", "b"}},
		},
	}
	svc := newQuizService(repo, &mockInvalidator{})

	view, err := svc.NextQuestion(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "q-easy", view.ID)
	assert.Equal(t, []string{models.DifficultyHard, models.DifficultyMedium, models.DifficultyEasy}, repo.randomRequested)
}

func TestNextQuestionNoBank(t *testing.T) {
	svc := newQuizService(&mockQuizRepo{}, &mockInvalidator{})

	_, err := svc.NextQuestion(context.Background(), 1, "")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestSubmitAttemptGradesServerSide(t *testing.T) {
	repo := &mockQuizRepo{
		questions: map[string]*models.QuizQuestion{
			"q1": {ID: "q1", CorrectAnswer: "4", Difficulty: models.DifficultyEasy},
		},
	}
	inv := &mockInvalidator{}
	svc := newQuizService(repo, inv)

	result, err := svc.SubmitAttempt(context.Background(), 3, models.SubmitAttemptRequest{
		QuestionID:       "q1",
		SelectedAnswer:   "4",
		TimeTakenSeconds: 10,
	})
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, "4", result.CorrectAnswer)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, int64(3), repo.inserted[0].StudentID)
	assert.Equal(t, models.DifficultyEasy, repo.inserted[0].Difficulty)
	assert.Equal(t, []int64{3}, inv.students)
}

func TestSubmitAttemptWrongAnswer(t *testing.T) {
	repo := &mockQuizRepo{
		questions: map[string]*models.QuizQuestion{
			"q1": {ID: "q1", CorrectAnswer: "4", Difficulty: models.DifficultyEasy},
		},
	}
	svc := newQuizService(repo, &mockInvalidator{})

	result, err := svc.SubmitAttempt(context.Background(), 3, models.SubmitAttemptRequest{
		QuestionID:     "q1",
		SelectedAnswer: "5",
	})
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, "4", result.CorrectAnswer)
}

func TestSubmitAttemptUnknownQuestion(t *testing.T) {
	svc := newQuizService(&mockQuizRepo{}, &mockInvalidator{})

	_, err := svc.SubmitAttempt(context.Background(), 3, models.SubmitAttemptRequest{
		QuestionID:     "ghost",
		SelectedAnswer: "4",
	})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestCreateQuestionRejectsAnswerOutsideOptions(t *testing.T) {
	svc := newQuizService(&mockQuizRepo{}, &mockInvalidator{})

	_, err := svc.CreateQuestion(context.Background(), models.CreateQuestionRequest{
		QuestionText:  "Q?",
		Options:       []string{"a", "b"},
		CorrectAnswer: "c",
		Difficulty:    models.DifficultyEasy,
	})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}
