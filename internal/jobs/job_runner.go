package jobs

import (
	"time"

	"readbooks-backend/internal/config"
	"readbooks-backend/internal/logger"
	"readbooks-backend/internal/repository"
	"readbooks-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	borrows repository.BorrowRepository
	email   service.EmailService
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(borrows repository.BorrowRepository, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		borrows: borrows,
		email:   email,
		config:  cfg,
		now:     time.Now,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.SendOverdueReminders()
}
