// Package jobs provides scheduled background tasks shared by both services.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(storeProbe, "@every 10s", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// StoreHealthJob pings the store and keeps the orderflow_store_up gauge
// current, so an outage shows in /metrics even when no request hits /health.
// Overlapping runs are skipped.
package jobs
