// Package jobs provides scheduled background tasks.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field. The domain core
// schedules nothing itself; jobs only call application queries.
//
// # Available Jobs
//
// DeliveryStatsJob logs the number of deliveries per status, by default at
// the top of every minute (STATS_CRON overrides the schedule).
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.NewDeliveryStatsJob(statsHandler, cfg.StatsCron, logger))
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
