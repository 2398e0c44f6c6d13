package model

import (
	"time"
)

// Enrollment links a student to a course, once.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StudentID      uint      `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"student_id"`
	CourseID       uint      `gorm:"not null;uniqueIndex:idx_enrollment_student_course" json:"course_id"`
	EnrollmentDate time.Time `gorm:"autoCreateTime" json:"enrollment_date"`
	Status         string    `gorm:"type:varchar(20);default:'enrolled'" json:"status"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course  Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}
