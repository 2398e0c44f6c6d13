package model

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an in-app message for one user. Data carries optional
// structured context (entity ids, links) as raw JSON.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID  uint           `gorm:"not null;index" json:"user_id"`
	Title   string         `gorm:"not null" json:"title"`
	Message string         `gorm:"type:text" json:"message"`
	Data    datatypes.JSON `json:"data,omitempty"`
	ReadAt  *time.Time     `json:"read_at,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}
