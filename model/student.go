package model

import (
	"time"
)

// Gender values accepted on student and instructor profiles
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Student is a profile record. Its lifecycle status and soft-delete flag are
// only ever mutated through the dedicated status/soft-delete operations, which
// keep the linked credential's IsActive flag in sync.
type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName     string     `gorm:"not null" json:"first_name"`
	LastName      string     `gorm:"not null" json:"last_name"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Phone         string     `json:"phone,omitempty"`
	DOB           *time.Time `json:"dob,omitempty"`
	Gender        string     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Address       string     `json:"address,omitempty"`
	AdmissionDate time.Time  `gorm:"autoCreateTime" json:"admission_date"`

	Status   string `gorm:"type:varchar(20);default:'active';index" json:"status"`
	IsActive bool   `gorm:"default:true;index" json:"is_active"`

	DepartmentID uint `gorm:"not null;index" json:"department_id"`

	// Relationships
	Department  Department   `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Enrollments []Enrollment `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Payments    []Payment    `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Attendance  []Attendance `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Marks       []Mark       `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}
