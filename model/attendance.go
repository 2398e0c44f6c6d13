package model

import (
	"time"
)

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// Attendance records one student's presence in one course on one date.
// The composite unique index keeps double marking out at the storage layer.
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StudentID uint      `gorm:"not null;uniqueIndex:idx_attendance_student_course_date" json:"student_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_attendance_student_course_date" json:"course_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_attendance_student_course_date;type:date" json:"date"`
	Status    string    `gorm:"type:varchar(10);not null" json:"status"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Course  Course  `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// ValidAttendanceStatus reports whether status is a known attendance status
func ValidAttendanceStatus(status string) bool {
	return status == AttendancePresent || status == AttendanceAbsent || status == AttendanceLate
}
