package services

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Scheduler runs the daily platform snapshot job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	analytics *AnalyticsService
	log       *zap.SugaredLogger
}

func NewScheduler(analytics *AnalyticsService, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		analytics: analytics,
		log:       log,
	}
}

func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At("00:05").Do(s.snapshot)
	s.scheduler.StartAsync()
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) snapshot() {
	if err := s.analytics.SnapshotPlatform(); err != nil {
		s.log.Errorw("platform snapshot failed", "error", err)
		return
	}
	s.log.Infow("platform snapshot written", "date", time.Now().Format("2006-01-02"))
}
