package model

import (
	"time"
)

// Days a class can be scheduled on
const (
	DayMon = "Mon"
	DayTue = "Tue"
	DayWed = "Wed"
	DayThu = "Thu"
	DayFri = "Fri"
	DaySat = "Sat"
)

// Course is an offered class. Code is stored uppercased and unique.
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"not null;index" json:"name"`
	Code        string `gorm:"uniqueIndex;not null" json:"code"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Credits     int    `gorm:"not null" json:"credits"`
	Semester    string `gorm:"not null" json:"semester"`

	DepartmentID uint `gorm:"not null;index" json:"department_id"`
	InstructorID uint `gorm:"not null;index" json:"instructor_id"`

	// Relationships
	Department  Department      `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Instructor  Instructor      `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Enrollments []Enrollment    `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Schedules   []ClassSchedule `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

// ClassSchedule is one weekly time slot for a course. Times are "HH:mm".
type ClassSchedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CourseID     uint   `gorm:"not null;index" json:"course_id"`
	InstructorID uint   `gorm:"not null;index" json:"instructor_id"`
	DayOfWeek    string `gorm:"type:varchar(3);not null" json:"day_of_week"`
	StartTime    string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime      string `gorm:"type:varchar(5);not null" json:"end_time"`
	Room         string `json:"room,omitempty"`

	// Relationships
	Course     Course     `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Instructor Instructor `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
}
