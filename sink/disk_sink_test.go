package sink_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/mocks"
	"chat-sync/sink"
)

func TestDiskSink_Consume(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIMessageRepository(ctrl)
	// Silencing logs for clean test output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	s := sink.NewDiskSink(mockRepo, logger)

	message := domain.Message{ID: 1, Room: 2, Sender: 7, At: time.Now().UTC(), Content: "hello"}

	t.Run("Received message is stored", func(t *testing.T) {
		mockRepo.EXPECT().StoreMessage(message).Return(nil).Times(1)

		req.NoError(s.Consume(ctx, event.MessageReceived{Message: message}))
	})

	t.Run("Edit is stored over the same key", func(t *testing.T) {
		edited := message
		edited.Content = "rewritten"
		edited.Edited = 1
		mockRepo.EXPECT().StoreMessage(edited).Return(nil).Times(1)

		req.NoError(s.Consume(ctx, event.MessageEdited{Message: edited}))
	})

	t.Run("History page stores every entry", func(t *testing.T) {
		page := []domain.Message{message, {ID: 2, Room: 2, Sender: 8, At: time.Now().UTC()}}
		mockRepo.EXPECT().StoreMessage(page[0]).Return(nil).Times(1)
		mockRepo.EXPECT().StoreMessage(page[1]).Return(nil).Times(1)

		req.NoError(s.Consume(ctx, event.MessagesLoaded{Room: 2, Messages: page}))
	})

	t.Run("Delete drops the cached entry", func(t *testing.T) {
		mockRepo.EXPECT().DeleteMessage(domain.RoomID(2), domain.MessageID(1)).Return(nil).Times(1)

		req.NoError(s.Consume(ctx, event.MessageDeleted{Room: 2, ID: 1}))
	})

	t.Run("Presence events do not touch the cache", func(t *testing.T) {
		req.NoError(s.Consume(ctx, event.OnlineUserRemoved{User: 7}))
	})
}
