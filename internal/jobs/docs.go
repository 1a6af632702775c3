// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with second precision.
//
// # Available Jobs
//
// 1. NotificationRelayJob - broadcasts stored notifications that no live viewer
// has received yet, for example because the broadcast after creation failed or
// the notification was written by another process.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, "*/10 * * * * *", 100, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. Overlapping runs are
// skipped.
package jobs
