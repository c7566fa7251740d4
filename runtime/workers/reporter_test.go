package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-sync/projection"
)

type fakeSnapshotter struct {
	calls atomic.Int32
}

func (f *fakeSnapshotter) Snapshot() *projection.State {
	f.calls.Add(1)
	return projection.NewState()
}

func TestReporter_Ticks_And_Reports_On_Shutdown(t *testing.T) {
	req := require.New(t)
	snap := &fakeSnapshotter{}
	worker := NewReporterWorker(snap, slog.Default(), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	req.Eventually(func() bool { return snap.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	before := snap.calls.Load()
	cancel()
	req.NoError(<-done)
	// One final report on the way out.
	req.Greater(snap.calls.Load(), before)
}
