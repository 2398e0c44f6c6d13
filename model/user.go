package model

import (
	"time"
)

// Roles a credential record can carry
const (
	RoleAdmin      = "admin"
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

// User is the credential record behind every login. Exactly one of StudentID /
// InstructorID is set for the matching role; admins link to neither. Credential
// records are never hard-deleted: IsActive=false locks the account out instead.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string `gorm:"type:varchar(20);not null" json:"role"`
	IsActive     bool   `gorm:"default:true;index" json:"is_active"`

	StudentID    *uint `gorm:"uniqueIndex" json:"student_id,omitempty"`
	InstructorID *uint `gorm:"uniqueIndex" json:"instructor_id,omitempty"`

	// Relationships
	Student       *Student       `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Instructor    *Instructor    `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Notifications []Notification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ValidRole reports whether role is one of the three known roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent || role == RoleInstructor
}
