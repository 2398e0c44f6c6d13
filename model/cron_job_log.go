package model

import (
	"time"
)

// CronJobLog records each maintenance job run for auditability
type CronJobLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	JobName     string     `gorm:"type:varchar(100);not null;index" json:"job_name"`
	Status      string     `gorm:"type:varchar(20);not null" json:"status"` // running, success, failed
	Message     string     `gorm:"type:text" json:"message,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
