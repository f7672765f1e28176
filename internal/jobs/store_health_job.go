package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const probeTimeout = 5 * time.Second

// Pinger reports whether the store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreHealthJob probes the store on a schedule and exports the result as
// orderflow_store_up. Only changes of state are logged.
type StoreHealthJob struct {
	store    Pinger
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	up       *bool
}

// NewStoreHealthJob accepts any schedule cron understands, e.g. "@every 10s".
func NewStoreHealthJob(store Pinger, schedule string, logger *slog.Logger) *StoreHealthJob {
	return &StoreHealthJob{
		store:    store,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "store_health_job"),
	}
}

func (j *StoreHealthJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Check(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Store health job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running probe to finish.
func (j *StoreHealthJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Store health job stopped")
}

// Check probes the store once and reports whether it answered.
func (j *StoreHealthJob) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := j.store.Ping(ctx)
	up := err == nil

	if up {
		metrics.StoreUp.Set(1)
	} else {
		metrics.StoreUp.Set(0)
	}

	if j.up == nil || *j.up != up {
		if up {
			j.logger.InfoContext(ctx, "Store is reachable")
		} else {
			j.logger.ErrorContext(ctx, "Store is unreachable", "error", err)
		}
	}
	j.up = &up

	return up
}
