package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Task is a periodic housekeeping job returning how many items it removed.
type Task struct {
	Name string
	Run  func() int
}

// MaintenanceWorker runs housekeeping tasks such as expiring stale cache
// entries and idle rate-limit buckets.
type MaintenanceWorker struct {
	tasks        []Task
	tickInterval time.Duration
	log          zerolog.Logger
}

func NewMaintenanceWorker(interval time.Duration, log zerolog.Logger, tasks ...Task) *MaintenanceWorker {
	return &MaintenanceWorker{
		tasks:        tasks,
		tickInterval: interval,
		log:          log.With().Str("worker", "maintenance").Logger(),
	}
}

func (w *MaintenanceWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

func (w *MaintenanceWorker) RunOnce() {
	for _, t := range w.tasks {
		if n := t.Run(); n > 0 {
			w.log.Debug().Str("task", t.Name).Int("removed", n).Msg("maintenance")
		}
	}
}
