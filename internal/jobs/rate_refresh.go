package jobs

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/revenue_split_app/internal/core/ports/services"
	"github.com/jasonlvhit/gocron"
)

// RateRefreshJob periodically refreshes the exchange rate table. Within the
// freshness window a tick is a no-op, so the interval may be shorter than it.
type RateRefreshJob struct {
	refresher       portssvc.ExchangeRateRefresherSvc
	intervalMinutes uint64
	logger          *slog.Logger
}

func NewRateRefreshJob(refresher portssvc.ExchangeRateRefresherSvc, intervalMinutes uint64, logger *slog.Logger) *RateRefreshJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateRefreshJob{
		refresher:       refresher,
		intervalMinutes: intervalMinutes,
		logger:          logger.With(slog.String("job", "rate_refresh")),
	}
}

// Run performs one refresh.
func (j *RateRefreshJob) Run() {
	status, err := j.refresher.RefreshRates(context.Background())
	if err != nil {
		j.logger.Warn("Scheduled exchange rate refresh failed",
			slog.String("source", string(status.Source)),
			slog.String("error", err.Error()))
		return
	}
	j.logger.Debug("Scheduled exchange rate refresh done", slog.String("source", string(status.Source)))
}

// Start schedules Run every intervalMinutes and returns a func that stops the
// scheduler. An interval of 0 schedules nothing.
func (j *RateRefreshJob) Start() (stop func()) {
	if j.intervalMinutes == 0 {
		j.logger.Info("Scheduled exchange rate refresh disabled")
		return func() {}
	}

	s := gocron.NewScheduler()
	s.Every(j.intervalMinutes).Minutes().Do(j.Run)
	stopCh := s.Start()
	j.logger.Info("Scheduled exchange rate refresh started", slog.Uint64("interval_minutes", j.intervalMinutes))

	return func() {
		stopCh <- true
		s.Clear()
	}
}
