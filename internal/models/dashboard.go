package models

import "time"

// DifficultyBreakdown summarises attempt accuracy within one band.
type DifficultyBreakdown struct {
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// StudentDashboard is the cached per-student progress summary.
type StudentDashboard struct {
	MasteryScore          float64                        `json:"mastery_score"`
	RecommendedDifficulty string                         `json:"recommended_difficulty"`
	TotalAttempts         int                            `json:"total_attempts"`
	CorrectAttempts       int                            `json:"correct_attempts"`
	AverageTimeSeconds    float64                        `json:"average_time_seconds"`
	TotalHintsUsed        int                            `json:"total_hints_used"`
	ByDifficulty          map[string]DifficultyBreakdown `json:"by_difficulty"`
	RecentAttempts        []QuizAttempt                  `json:"recent_attempts"`
	GeneratedAt           time.Time                      `json:"generated_at"`
}
