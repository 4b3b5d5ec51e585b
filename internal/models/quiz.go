package models

import "time"

// QuizQuestion is a question-bank entry. CorrectAnswer and Hint are only
// serialized on teacher-facing payloads; students receive QuestionView.
type QuizQuestion struct {
	ID            string      `db:"id" json:"question_id"`
	CourseID      *string     `db:"course_id" json:"course_id,omitempty"`
	QuestionText  string      `db:"question_text" json:"question_text"`
	Options       JSONStrings `db:"options" json:"options"`
	CorrectAnswer string      `db:"correct_answer" json:"correct_answer"`
	Difficulty    string      `db:"difficulty" json:"difficulty"`
	Hint          string      `db:"hint" json:"hint"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// QuestionView is the student-facing projection of a question.
type QuestionView struct {
	ID           string      `json:"question_id"`
	QuestionText string      `json:"question_text"`
	Options      JSONStrings `json:"options"`
	Difficulty   string      `json:"difficulty"`
	Hint         string      `json:"hint"`
}

// View strips grading fields from a question.
func (q *QuizQuestion) View() QuestionView {
	return QuestionView{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Options:      q.Options,
		Difficulty:   q.Difficulty,
		Hint:         q.Hint,
	}
}

// QuizAttempt records the learning signals captured for one answered
// question.
type QuizAttempt struct {
	ID               string    `db:"id" json:"attempt_id"`
	StudentID        int64     `db:"student_id" json:"-"`
	QuestionID       string    `db:"question_id" json:"question_id"`
	SelectedAnswer   string    `db:"selected_answer" json:"selected_answer"`
	IsCorrect        bool      `db:"is_correct" json:"is_correct"`
	TimeTakenSeconds int       `db:"time_taken_seconds" json:"time_taken"`
	HintsUsed        int       `db:"hints_used" json:"hints_used"`
	Difficulty       string    `db:"difficulty" json:"difficulty"`
	CreatedAt        time.Time `db:"created_at" json:"timestamp"`
}

// CreateQuestionRequest adds a question to the bank.
type CreateQuestionRequest struct {
	CourseID      string   `json:"course_id"`
	QuestionText  string   `json:"question_text" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Difficulty    string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Hint          string   `json:"hint"`
}

// SubmitAttemptRequest carries a student's answer for grading.
type SubmitAttemptRequest struct {
	QuestionID       string `json:"question_id" validate:"required"`
	SelectedAnswer   string `json:"selected_answer" validate:"required"`
	TimeTakenSeconds int    `json:"time_taken" validate:"min=0"`
	HintsUsed        int    `json:"hints_used" validate:"min=0"`
}

// AttemptResult is returned after grading: the verdict plus the correct
// answer for client-side review.
type AttemptResult struct {
	AttemptID     string `json:"attempt_id"`
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// QuestionFilter narrows question-bank listings.
type QuestionFilter struct {
	CourseID   string
	Difficulty string
}

// CourseResultRow is one line of a course's quiz-results export.
type CourseResultRow struct {
	StudentEmail     string    `db:"student_email"`
	QuestionText     string    `db:"question_text"`
	Difficulty       string    `db:"difficulty"`
	IsCorrect        bool      `db:"is_correct"`
	TimeTakenSeconds int       `db:"time_taken_seconds"`
	HintsUsed        int       `db:"hints_used"`
	AttemptedAt      time.Time `db:"attempted_at"`
}
