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

type quizRepository interface {
	CreateQuestion(ctx context.Context, q *models.QuizQuestion) error
	FindQuestionByID(ctx context.Context, id string) (*models.QuizQuestion, error)
	ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.QuizQuestion, error)
	RandomQuestionByDifficulty(ctx context.Context, courseID, difficulty string, excludeIDs []string) (*models.QuizQuestion, error)
	InsertAttempt(ctx context.Context, attempt *models.QuizAttempt) error
	RecentAttempts(ctx context.Context, studentID int64, limit int) ([]models.QuizAttempt, error)
}

type dashboardInvalidator interface {
	Invalidate(ctx context.Context, studentID int64)
}

const (
	defaultMasteryScore = 50.0
	hintPenalty         = 0.1
	masteryEasyBelow    = 40.0
	masteryHardAbove    = 70.0
)

// QuizService drives the adaptive quiz: question bank management, next
// question selection, and server-side grading.
type QuizService struct {
	repo          quizRepository
	dashboards    dashboardInvalidator
	validator     *validator.Validate
	logger        *zap.Logger
	masteryWindow int
}

// NewQuizService constructs a QuizService instance.
func NewQuizService(repo quizRepository, dashboards dashboardInvalidator, validate *validator.Validate, logger *zap.Logger, masteryWindow int) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if masteryWindow <= 0 {
		masteryWindow = 20
	}
	return &QuizService{
		repo:          repo,
		dashboards:    dashboards,
		validator:     validate,
		logger:        logger,
		masteryWindow: masteryWindow,
	}
}

// CreateQuestion adds a question to the bank.
func (s *QuizService) CreateQuestion(ctx context.Context, req models.CreateQuestionRequest) (*models.QuizQuestion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	found := false
	for _, opt := range req.Options {
		if opt == req.CorrectAnswer {
			found = true
			break
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Correct answer must be one of the options")
	}

	question := &models.QuizQuestion{
		QuestionText:  req.QuestionText,
		Options:       models.JSONStrings(req.Options),
		CorrectAnswer: req.CorrectAnswer,
		Difficulty:    req.Difficulty,
		Hint:          req.Hint,
	}
	if req.CourseID != "" {
		question.CourseID = &req.CourseID
	}
	if err := s.repo.CreateQuestion(ctx, question); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	s.logger.Info("question created", zap.String("question_id", question.ID), zap.String("difficulty", question.Difficulty))
	return question, nil
}

// ListQuestions returns bank entries including answers. Teacher-only.
func (s *QuizService) ListQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.QuizQuestion, error) {
	if filter.Difficulty != "" && !models.ValidDifficulty(filter.Difficulty) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Unknown difficulty")
	}
	questions, err := s.repo.ListQuestions(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	if questions == nil {
		questions = []models.QuizQuestion{}
	}
	return questions, nil
}

// NextQuestion picks a question matching the student's mastery band.
// When the target band is exhausted the neighbouring bands are tried, in
// order of closeness, before giving up.
func (s *QuizService) NextQuestion(ctx context.Context, studentID int64, courseID string) (*models.QuestionView, error) {
	attempts, err := s.repo.RecentAttempts(ctx, studentID, s.masteryWindow)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	mastery := MasteryScore(attempts)
	target := DifficultyForMastery(mastery)

	seen := make([]string, 0, len(attempts))
	for _, a := range attempts {
		seen = append(seen, a.QuestionID)
	}

	for _, band := range bandFallback(target) {
		question, err := s.repo.RandomQuestionByDifficulty(ctx, courseID, band, seen)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		view := question.View()
		return &view, nil
	}

	// Every unseen question is exhausted; allow repeats before 404ing.
	for _, band := range bandFallback(target) {
		question, err := s.repo.RandomQuestionByDifficulty(ctx, courseID, band, nil)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		view := question.View()
		return &view, nil
	}

	return nil, appErrors.Clone(appErrors.ErrNotFound, "No questions available")
}

// SubmitAttempt grades the answer server-side, records the attempt, and
// invalidates the student's cached dashboard.
func (s *QuizService) SubmitAttempt(ctx context.Context, studentID int64, req models.SubmitAttemptRequest) (*models.AttemptResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	question, err := s.repo.FindQuestionByID(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Question not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	attempt := &models.QuizAttempt{
		StudentID:        studentID,
		QuestionID:       question.ID,
		SelectedAnswer:   req.SelectedAnswer,
		IsCorrect:        req.SelectedAnswer == question.CorrectAnswer,
		TimeTakenSeconds: req.TimeTakenSeconds,
		HintsUsed:        req.HintsUsed,
		Difficulty:       question.Difficulty,
	}
	if err := s.repo.InsertAttempt(ctx, attempt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	if s.dashboards != nil {
		s.dashboards.Invalidate(ctx, studentID)
	}

	return &models.AttemptResult{
		AttemptID:     attempt.ID,
		IsCorrect:     attempt.IsCorrect,
		CorrectAnswer: question.CorrectAnswer,
	}, nil
}

// MasteryScore computes the 0-100 mastery value over the given attempts.
// Each correct attempt earns credit 1 minus 0.1 per hint used (floored at
// zero); the score is the average credit times 100. No history defaults
// to 50, the medium band.
func MasteryScore(attempts []models.QuizAttempt) float64 {
	if len(attempts) == 0 {
		return defaultMasteryScore
	}

	var total float64
	for _, a := range attempts {
		if !a.IsCorrect {
			continue
		}
		credit := 1.0 - hintPenalty*float64(a.HintsUsed)
		if credit < 0 {
			credit = 0
		}
		total += credit
	}
	return total / float64(len(attempts)) * 100
}

// DifficultyForMastery maps a mastery score to a question band.
func DifficultyForMastery(score float64) string {
	switch {
	case score < masteryEasyBelow:
		return models.DifficultyEasy
	case score > masteryHardAbove:
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}

// bandFallback orders bands by closeness to the target.
func bandFallback(target string) []string {
	switch target {
	case models.DifficultyEasy:
		return []string{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard}
	case models.DifficultyHard:
		return []string{models.DifficultyHard, models.DifficultyMedium, models.DifficultyEasy}
	default:
		return []string{models.DifficultyMedium, models.DifficultyEasy, models.DifficultyHard}
	}
}
