// Package sink contains consumers of committed events: side effects such as
// the local history cache and session statistics. Sinks observe only; they
// never mutate the projection.
package sink

import (
	"context"
	"log/slog"

	"chat-sync/domain/event"
	"chat-sync/repositories"
)

// DiskSink mirrors timeline changes into the badger history cache.
type DiskSink struct {
	repository repositories.IMessageRepository
	log        *slog.Logger
}

func NewDiskSink(repository repositories.IMessageRepository, log *slog.Logger) DiskSink {
	return DiskSink{repository: repository, log: log}
}

func (d DiskSink) Consume(_ context.Context, e event.Event) error {
	switch evt := e.(type) {
	case event.MessageReceived:
		return d.repository.StoreMessage(evt.Message)
	case event.MessageEdited:
		return d.repository.StoreMessage(evt.Message)
	case event.MessagesLoaded:
		for _, m := range evt.Messages {
			if err := d.repository.StoreMessage(m); err != nil {
				return err
			}
		}
		return nil
	case event.MessageDeleted:
		return d.repository.DeleteMessage(evt.Room, evt.ID)
	default:
		return nil
	}
}
