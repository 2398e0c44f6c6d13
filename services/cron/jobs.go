package cron

import (
	"fmt"
	"time"

	"github.com/sahilchouksey/student-management-api/model"
)

// CleanupOldNotifications removes read notifications older than 90 days
func (m *CronManager) CleanupOldNotifications() (string, error) {
	cutoff := time.Now().AddDate(0, 0, -90)

	result := m.db.
		Where("read_at IS NOT NULL AND read_at < ?", cutoff).
		Delete(&model.Notification{})
	if result.Error != nil {
		return "", result.Error
	}

	return fmt.Sprintf("deleted %d notifications", result.RowsAffected), nil
}

// CleanupCronJobLogs trims job log rows older than 30 days
func (m *CronManager) CleanupCronJobLogs() (string, error) {
	cutoff := time.Now().AddDate(0, 0, -30)

	result := m.db.
		Where("created_at < ?", cutoff).
		Delete(&model.CronJobLog{})
	if result.Error != nil {
		return "", result.Error
	}

	return fmt.Sprintf("deleted %d log rows", result.RowsAffected), nil
}
