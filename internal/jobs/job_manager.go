package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates the scheduled jobs of a service.
type JobManager struct {
	storeHealthJob *StoreHealthJob
}

func NewJobManager(store Pinger, healthSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		storeHealthJob: NewStoreHealthJob(store, healthSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.storeHealthJob.Start(); err != nil {
		return fmt.Errorf("failed to start store health job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.storeHealthJob.Stop()
}
