package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONStrings stores a string slice as a jsonb column.
type JSONStrings []string

// Value implements driver.Valuer.
func (s JSONStrings) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *JSONStrings) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

// Course is a teacher-owned unit of study.
type Course struct {
	ID          string    `db:"id" json:"course_id"`
	TeacherID   int64     `db:"teacher_id" json:"teacher_id"`
	Name        string    `db:"course_name" json:"course_name"`
	Description string    `db:"course_description" json:"course_description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// CreateCourseRequest creates a new course for the calling teacher.
type CreateCourseRequest struct {
	Name        string `json:"course_name" validate:"required"`
	Description string `json:"course_description"`
}

// CreateTopicRequest adds a topic to a course.
type CreateTopicRequest struct {
	CourseID      string   `json:"course_id" validate:"required"`
	Name          string   `json:"topic_name" validate:"required"`
	Description   string   `json:"topic_description"`
	Prerequisites []string `json:"prerequisites"`
}

// Topic belongs to a course and may list prerequisite topics.
type Topic struct {
	ID            string      `db:"id" json:"topic_id"`
	CourseID      string      `db:"course_id" json:"course_id"`
	Name          string      `db:"topic_name" json:"topic_name"`
	Description   string      `db:"topic_description" json:"topic_description"`
	Prerequisites JSONStrings `db:"prerequisites" json:"prerequisites"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}
