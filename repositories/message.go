//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"chat-sync/domain"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	GetMessages(room domain.RoomID, cursor *string) ([]domain.Message, *string, error)
	DeleteMessage(room domain.RoomID, id domain.MessageID) error
}

// MessageRepository is the local history cache: the last-known timeline of
// every room, so a restarted client can render before the server answers.
// It mirrors the projection, it is not the source of truth.
type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

// StoreMessage persists one message. The key is "msg:{room}:{ts_padded}:{id}":
//  1. The 19-digit zero-padded nanosecond timestamp makes lexicographical
//     order chronological within a room prefix.
//  2. The message id suffix disambiguates messages sharing a timestamp and
//     lets edits overwrite in place (edits never change the timestamp).
func (m MessageRepository) StoreMessage(message domain.Message) error {
	bytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(messageKey(message)), bytes)
	})
}

// GetMessages retrieves one page for a room, newest first, using a reverse
// prefix scan. The returned cursor resumes the scan on the next call, which
// is exactly the shape a "load more" fetch wants.
func (m MessageRepository) GetMessages(room domain.RoomID, cursor *string) ([]domain.Message, *string, error) {
	var raw [][]byte
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := roomPrefix(room)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past any possible timestamp, then walk backwards.
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(raw) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *m.limitMessages))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefixStr):])
			err := item.Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	messages := make([]domain.Message, 0, len(raw))
	for _, b := range raw {
		var message domain.Message
		if err = json.Unmarshal(b, &message); err != nil {
			return nil, nil, err
		}
		messages = append(messages, message)
	}
	return messages, &lastKey, nil
}

// DeleteMessage drops the cached entry for (room, id). The timestamp part of
// the key is unknown to callers reacting to a delete event, so the room
// prefix is scanned for the id suffix. Absence is not an error.
func (m MessageRepository) DeleteMessage(room domain.RoomID, id domain.MessageID) error {
	suffix := fmt.Sprintf(":%d", id)
	return m.db.Update(func(txn *badger.Txn) error {
		prefix := []byte(roomPrefix(room))
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			if strings.HasSuffix(key, suffix) {
				return txn.Delete([]byte(key))
			}
		}
		return nil
	})
}

func messageKey(message domain.Message) string {
	return fmt.Sprintf("%s%019d:%d", roomPrefix(message.Room), message.At.UnixNano(), message.ID)
}

func roomPrefix(room domain.RoomID) string {
	return fmt.Sprintf("msg:%d:", room)
}
