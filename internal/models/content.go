package models

import "time"

// Difficulty bands shared by content and quiz questions.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether the value is a known band.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Content is a piece of learning material under a topic. PDFPath points
// at the stored upload relative to the content storage dir; it is never
// serialized, downloads go through signed URLs.
type Content struct {
	ID            string      `db:"id" json:"content_id"`
	CourseID      string      `db:"course_id" json:"course_id"`
	TopicID       string      `db:"topic_id" json:"topic_id"`
	Title         string      `db:"title" json:"title"`
	Difficulty    string      `db:"difficulty" json:"difficulty"`
	EstimatedTime int         `db:"estimated_time" json:"estimated_time"`
	Tags          JSONStrings `db:"tags" json:"tags"`
	NotesText     string      `db:"notes_text" json:"notes_text"`
	VideoURL      string      `db:"video_url" json:"video_url"`
	PDFName       string      `db:"pdf_name" json:"pdf_name,omitempty"`
	PDFPath       string      `db:"pdf_path" json:"-"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// ContentFilter narrows content listings.
type ContentFilter struct {
	CourseID string
	TopicID  string
}
