package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Muazzam0101/neurolearn-amep/internal/models"
	appErrors "github.com/Muazzam0101/neurolearn-amep/pkg/errors"
)

type dashboardCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheMetrics interface {
	RecordCacheOperation(hit bool)
}

// DashboardService builds the per-student progress summary from attempt
// history, with a Redis cache in front.
type DashboardService struct {
	repo     quizRepository
	cache    dashboardCache
	metrics  cacheMetrics
	logger   *zap.Logger
	cacheTTL time.Duration
	window   int
}

// NewDashboardService constructs a DashboardService instance.
func NewDashboardService(repo quizRepository, cache dashboardCache, metrics cacheMetrics, logger *zap.Logger, cacheTTL time.Duration, window int) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if window <= 0 {
		window = 20
	}
	return &DashboardService{
		repo:     repo,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		cacheTTL: cacheTTL,
		window:   window,
	}
}

func dashboardCacheKey(studentID int64) string {
	return fmt.Sprintf("dashboard:student:%d", studentID)
}

// Summary returns the student's dashboard, served from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context, studentID int64) (*models.StudentDashboard, error) {
	key := dashboardCacheKey(studentID)

	var cached models.StudentDashboard
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(true)
		}
		return &cached, nil
	} else if !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("dashboard cache read failed", zap.Int64("student_id", studentID), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(false)
	}

	dashboard, err := s.build(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, dashboard, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Int64("student_id", studentID), zap.Error(err))
	}
	return dashboard, nil
}

// Invalidate drops the cached dashboard after new attempts land.
func (s *DashboardService) Invalidate(ctx context.Context, studentID int64) {
	if err := s.cache.DeleteByPattern(ctx, dashboardCacheKey(studentID)); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Int64("student_id", studentID), zap.Error(err))
	}
}

func (s *DashboardService) build(ctx context.Context, studentID int64) (*models.StudentDashboard, error) {
	attempts, err := s.repo.RecentAttempts(ctx, studentID, s.window)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	mastery := MasteryScore(attempts)

	dashboard := &models.StudentDashboard{
		MasteryScore:          mastery,
		RecommendedDifficulty: DifficultyForMastery(mastery),
		TotalAttempts:         len(attempts),
		ByDifficulty:          make(map[string]models.DifficultyBreakdown),
		RecentAttempts:        attempts,
		GeneratedAt:           time.Now().UTC(),
	}
	if dashboard.RecentAttempts == nil {
		dashboard.RecentAttempts = []models.QuizAttempt{}
	}

	var totalTime int
	for _, a := range attempts {
		if a.IsCorrect {
			dashboard.CorrectAttempts++
		}
		dashboard.TotalHintsUsed += a.HintsUsed
		totalTime += a.TimeTakenSeconds

		breakdown := dashboard.ByDifficulty[a.Difficulty]
		breakdown.Attempts++
		if a.IsCorrect {
			breakdown.Correct++
		}
		dashboard.ByDifficulty[a.Difficulty] = breakdown
	}
	if len(attempts) > 0 {
		dashboard.AverageTimeSeconds = float64(totalTime) / float64(len(attempts))
	}
	for band, breakdown := range dashboard.ByDifficulty {
		if breakdown.Attempts > 0 {
			breakdown.Accuracy = float64(breakdown.Correct) / float64(breakdown.Attempts) * 100
		}
		dashboard.ByDifficulty[band] = breakdown
	}

	return dashboard, nil
}
