package jobs

import (
	"context"
	"log/slog"

	"carrierlink/internal/core/application/usecases/queries"
	"carrierlink/internal/core/domain/model/delivery"

	"github.com/robfig/cron/v3"
)

// DefaultStatsSchedule fires at the top of every minute.
const DefaultStatsSchedule = "0 * * * * *"

// DeliveryStatsJob periodically logs how many deliveries are in each status.
type DeliveryStatsJob struct {
	handler  queries.GetDeliveryStatsQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDeliveryStatsJob creates the job. schedule is a six-field cron
// expression (seconds first); empty means DefaultStatsSchedule.
func NewDeliveryStatsJob(
	handler queries.GetDeliveryStatsQueryHandler,
	schedule string,
	logger *slog.Logger,
) *DeliveryStatsJob {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}
	return &DeliveryStatsJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stats_job"),
	}
}

// Start registers the job with its schedule and starts the scheduler.
func (j *DeliveryStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery stats job started", "schedule", j.schedule)
	return nil
}

// Run computes the counts once and logs them.
func (j *DeliveryStatsJob) Run(ctx context.Context) {
	stats, err := j.handler.Handle(ctx, queries.NewGetDeliveryStatsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery stats job failed", "error", err)
		return
	}

	attrs := make([]any, 0, 2*len(stats.ByStatus)+2)
	for _, status := range delivery.Statuses() {
		attrs = append(attrs, status.String(), stats.ByStatus[status])
	}
	attrs = append(attrs, "total", stats.Total)
	j.logger.InfoContext(ctx, "Delivery stats", attrs...)
}

// Stop stops the scheduler and waits for a running tick to finish.
func (j *DeliveryStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivery stats job stopped")
}
