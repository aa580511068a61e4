package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"aitools-engine/internal/logging"
)

type Task func(ctx context.Context) error

// Every runs task once immediately and then on each tick until ctx is
// done. Runs never overlap; a tick that fires during a slow run is skipped.
func Every(ctx context.Context, interval time.Duration, name string, log *zap.Logger, task Task) {
	log = logging.OrNop(log).With(zap.String("task", name))
	if interval <= 0 {
		log.Info("scheduled task disabled")
		return
	}

	run := func() {
		start := time.Now()
		if err := task(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("scheduled task failed", zap.Error(err))
			return
		}
		log.Debug("scheduled task done", zap.Duration("took", time.Since(start)))
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
