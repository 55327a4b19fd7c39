package jobs

import (
	"bridgeseed-backend/internal/config"
	"bridgeseed-backend/internal/logger"
	"bridgeseed-backend/internal/repository"
	"bridgeseed-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs.
type JobRunner struct {
	store    repository.Store
	emailSvc service.EmailService
	config   *config.Config
}

func NewJobRunner(store repository.Store, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		emailSvc: emailSvc,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery so one bad
// run cannot take the scheduler down.
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

// RunAllDailyJobs runs every daily job once, for manual execution.
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendPendingVerificationDigest()
	jr.SendStalePurchaseReminders()
}
