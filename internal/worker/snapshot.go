package worker

import (
	"context"
	"time"

	"treasure_hunter_bot/internal/service"
	"treasure_hunter_bot/pkg/logger"
	"go.uber.org/zap"

	"github.com/go-co-op/gocron/v2"
)

type SnapshotConfig struct {
	Interval time.Duration `yaml:"interval"`
	Limit    int           `yaml:"limit"`
}

// StartSnapshotScheduler periodically persists the weekly and monthly
// standings. The returned scheduler should be shut down on exit.
func StartSnapshotScheduler(cfg SnapshotConfig, ls *service.LeaderboardService) (gocron.Scheduler, error) {
	log := logger.Logger()

	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := ls.SnapshotWindows(ctx, cfg.Limit); err != nil {
				log.Error("leaderboard snapshot failed", zap.Error(err))
				return
			}
			log.Info("leaderboard snapshot persisted")
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
