package model

import (
	"time"
)

// Department groups students, instructors and courses. NameKey holds the
// lowercased name under a unique index so "CS" and "cs" collide at the
// storage layer.
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"not null" json:"name"`
	NameKey  string `gorm:"uniqueIndex;not null" json:"-"`
	Building string `json:"building,omitempty"`
	Status   string `gorm:"type:varchar(20);default:'active';index" json:"status"`
	IsActive bool   `gorm:"default:true;index" json:"is_active"`

	HeadOfDepartmentID *uint `json:"head_of_department_id,omitempty"`

	// Relationships
	HeadOfDepartment *Instructor  `gorm:"foreignKey:HeadOfDepartmentID" json:"head_of_department,omitempty"`
	Students         []Student    `gorm:"foreignKey:DepartmentID" json:"-"`
	Instructors      []Instructor `gorm:"foreignKey:DepartmentID" json:"-"`
	Courses          []Course     `gorm:"foreignKey:DepartmentID" json:"-"`
}
