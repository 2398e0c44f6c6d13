package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/student-management-api/model"
	"gorm.io/gorm"
)

// CronManager manages all scheduled maintenance jobs
type CronManager struct {
	cron *cron.Cron
	db   *gorm.DB
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB) *CronManager {
	return &CronManager{
		cron: cron.New(),
		db:   db,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *CronManager) registerJobs() error {
	// Nightly at 02:00: purge read notifications older than 90 days
	_, err := m.cron.AddFunc("0 2 * * *", func() {
		m.runJob("cleanup_old_notifications", m.CleanupOldNotifications)
	})
	if err != nil {
		return err
	}

	// Nightly at 02:30: trim cron job logs older than 30 days
	_, err = m.cron.AddFunc("30 2 * * *", func() {
		m.runJob("cleanup_cron_job_logs", m.CleanupCronJobLogs)
	})
	return err
}

// runJob executes one job and records its outcome in cron_job_logs
func (m *CronManager) runJob(name string, job func() (string, error)) {
	entry := model.CronJobLog{
		JobName: name,
		Status:  "running",
	}
	if err := m.db.Create(&entry).Error; err != nil {
		log.Printf("cron: failed to record start of %s: %v", name, err)
	}

	message, err := job()
	now := time.Now()

	entry.CompletedAt = &now
	entry.Message = message
	entry.Status = "success"
	if err != nil {
		entry.Status = "failed"
		entry.Message = err.Error()
		log.Printf("cron: job %s failed: %v", name, err)
	}

	if entry.ID != 0 {
		if err := m.db.Save(&entry).Error; err != nil {
			log.Printf("cron: failed to record outcome of %s: %v", name, err)
		}
	}
}
