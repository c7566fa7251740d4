//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/wire"
)

// Applier is the single entry point into the reconciler. Exactly one event
// is applied at a time; an error means the event was rejected and the
// projection is unchanged.
type Applier interface {
	Apply(ctx context.Context, e event.Event) error
}

// BulkSyncer carries the connect-time wholesale operations, outside the
// tagged event stream.
type BulkSyncer interface {
	SetUsers(ctx context.Context, users []wire.UserDTO)
	SetRooms(ctx context.Context, rooms []wire.RoomDTO)
	SetOnline(ctx context.Context, online []domain.UserID)
}

// Reconciler is what the transport needs from the engine.
type Reconciler interface {
	Applier
	BulkSyncer
}

// EventSink observes committed events. Sinks run after the projection
// mutation and must not call back into the reconciler.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

type WorkerName string

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// lifecycle events, avoiding manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
