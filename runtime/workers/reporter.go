package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-sync/projection"
)

// Snapshotter is the read side of the reconciler.
type Snapshotter interface {
	Snapshot() *projection.State
}

// ReporterWorker periodically logs a one-line summary of the projection,
// mostly useful when running headless.
type ReporterWorker struct {
	engine   Snapshotter
	log      *slog.Logger
	interval time.Duration
}

func NewReporterWorker(engine Snapshotter, log *slog.Logger, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{engine: engine, log: log, interval: interval}
}

func (w *ReporterWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.report()
			return nil
		case <-ticker.C:
			w.report()
		}
	}
}

func (w *ReporterWorker) report() {
	state := w.engine.Snapshot()
	messages := 0
	for _, room := range state.Rooms {
		messages += len(room.Messages)
	}
	w.log.Info(fmt.Sprintf("Projection: %d rooms, %d messages, %d users, %d online",
		len(state.Rooms), messages, len(state.Users), len(state.Online)))
}
