package model

import (
	"time"
)

// Exam types a mark can be recorded for
const (
	ExamTypeMid        = "mid"
	ExamTypeFinal      = "final"
	ExamTypeAssignment = "assignment"
	ExamTypeQuiz       = "quiz"
)

// Mark is one exam score for a student in a course.
type Mark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StudentID uint      `gorm:"not null;index" json:"student_id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	ExamType  string    `gorm:"type:varchar(15);not null" json:"exam_type"`
	Score     float64   `gorm:"not null" json:"score"`
	MaxScore  float64   `gorm:"not null" json:"max_score"`
	ExamDate  time.Time `gorm:"not null" json:"exam_date"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course  Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// ValidExamType reports whether examType is a known exam type
func ValidExamType(examType string) bool {
	switch examType {
	case ExamTypeMid, ExamTypeFinal, ExamTypeAssignment, ExamTypeQuiz:
		return true
	}
	return false
}
