package model

import (
	"time"
)

// Instructor is a profile record with the same lifecycle mechanics as Student
// but its own status set (active / onleave / retired).
type Instructor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName string     `gorm:"not null" json:"first_name"`
	LastName  string     `gorm:"not null" json:"last_name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string     `json:"phone,omitempty"`
	DOB       *time.Time `json:"dob,omitempty"`
	Gender    string     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Address   string     `json:"address,omitempty"`
	HireDate  time.Time  `gorm:"autoCreateTime" json:"hire_date"`

	Status   string `gorm:"type:varchar(20);default:'active';index" json:"status"`
	IsActive bool   `gorm:"default:true;index" json:"is_active"`

	DepartmentID uint `gorm:"not null;index" json:"department_id"`

	// Relationships
	Department Department      `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Courses    []Course        `gorm:"foreignKey:InstructorID" json:"-"`
	Schedules  []ClassSchedule `gorm:"foreignKey:InstructorID" json:"-"`
}
