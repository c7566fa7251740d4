// Package reconcile applies the inbound event stream to the projection.
// One event is dispatched and fully reconciled before the next; handlers are
// pure state transitions plus a single commit-and-notify step. Ordering is
// only guaranteed within a connection, so every handler must tolerate
// duplicate delivery.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"chat-sync/contract"
	"chat-sync/domain/event"
	"chat-sync/errors"
	"chat-sync/projection"
)

// Engine is the single writer of the projection. The transport goroutine is
// its only caller; the mutex exists so snapshot readers (debug server,
// viewer) never observe a half-applied event.
type Engine struct {
	mu    sync.RWMutex
	state *projection.State
	log   *slog.Logger
	sinks []contract.EventSink
}

func NewEngine(log *slog.Logger, sinks ...contract.EventSink) *Engine {
	return &Engine{
		state: projection.NewState(),
		log:   log,
		sinks: sinks,
	}
}

// Apply routes one event to its handler and commits the result. The type
// switch is exhaustive over the event union; a type outside it is rejected
// as ErrUnknownEventKind. Reference-not-found conditions inside handlers are
// diagnostics, not errors: the event becomes a no-op and Apply returns nil.
func (e *Engine) Apply(ctx context.Context, evt event.Event) error {
	e.mu.Lock()
	var mutated bool
	switch ev := evt.(type) {
	case event.MessagesLoaded:
		mutated = e.applyMessagesLoaded(ev)
	case event.MessageDeleted:
		mutated = e.applyMessageDeleted(ev)
	case event.MessageEdited:
		mutated = e.applyMessageEdited(ev)
	case event.MessageReceived:
		mutated = e.applyMessageReceived(ev)
	case event.OnlineUserAdded:
		mutated = e.applyOnlineUserAdded(ev)
	case event.OnlineUserRemoved:
		mutated = e.applyOnlineUserRemoved(ev)
	case event.RoomDeleted:
		mutated = e.applyRoomDeleted(ev)
	case event.RoomUsersReplaced:
		mutated = e.applyRoomUsersReplaced(ev)
	case event.RoomAdded:
		mutated = e.applyRoomAdded(ev)
	default:
		e.mu.Unlock()
		return fmt.Errorf("%w: %T", errors.ErrUnknownEventKind, evt)
	}
	e.mu.Unlock()

	if mutated {
		e.notify(ctx, evt)
	}
	return nil
}

// Snapshot returns a deep copy of the current projection.
func (e *Engine) Snapshot() *projection.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Clone()
}

// notify fans the committed event out to the sinks. A sink failure is
// contained: the commit already happened and the remaining sinks still run.
func (e *Engine) notify(ctx context.Context, evt event.Event) {
	for _, sink := range e.sinks {
		if err := sink.Consume(ctx, evt); err != nil {
			e.log.Warn("Sink rejected event", "kind", evt.Kind(), "error", err)
		}
	}
}
