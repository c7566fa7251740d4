package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/wire"
)

func Test_SetRooms_Preserves_Loaded_History(t *testing.T) {
	req := require.New(t)
	engine := newTestEngine()
	ctx := context.Background()
	seedRoom(t, engine, 1)
	req.NoError(engine.Apply(ctx, event.MessagesLoaded{Room: 1, Messages: []domain.Message{
		msg(1, 1, 10), msg(1, 2, 20),
	}}))
	req.NoError(engine.Apply(ctx, event.MessagesLoaded{Room: 1}))

	engine.SetRooms(ctx, []wire.RoomDTO{
		{RoomID: 1, Name: "renamed", Users: []int{1, 2}},
		{RoomID: 2, Name: "fresh"},
	})

	state := engine.Snapshot()
	room := state.Room(1)
	req.Equal("renamed", room.Name)
	req.Equal([]domain.UserID{1, 2}, room.Users)
	req.Len(room.Messages, 2)
	req.True(room.AllLoaded)

	fresh := state.Room(2)
	req.Empty(fresh.Messages)
	req.False(fresh.AllLoaded)
}

func Test_SetRooms_Drops_Rooms_Missing_From_Resync(t *testing.T) {
	req := require.New(t)
	engine := newTestEngine()
	ctx := context.Background()
	seedRoom(t, engine, 1)

	engine.SetRooms(ctx, []wire.RoomDTO{{RoomID: 2, Name: "only"}})

	state := engine.Snapshot()
	req.Nil(state.Room(1))
	req.NotNil(state.Room(2))
}

func Test_SetUsers_Is_A_Wholesale_Replace(t *testing.T) {
	req := require.New(t)
	engine := newTestEngine()
	ctx := context.Background()
	engine.SetUsers(ctx, []wire.UserDTO{{UserID: 1, User: "alice", Sex: "F"}})

	engine.SetUsers(ctx, []wire.UserDTO{{UserID: 2, User: "bob", Sex: "M"}})

	state := engine.Snapshot()
	req.Len(state.Users, 1)
	req.Equal("bob", state.Users[2].Name)
}

func Test_SetOnline_Is_A_Wholesale_Replace(t *testing.T) {
	req := require.New(t)
	engine := newTestEngine()
	ctx := context.Background()
	engine.SetOnline(ctx, []domain.UserID{1, 2})

	engine.SetOnline(ctx, []domain.UserID{3})

	state := engine.Snapshot()
	req.False(state.IsOnline(1))
	req.True(state.IsOnline(3))
	req.Equal([]domain.UserID{3}, state.OnlineList())
}

type recordingSink struct {
	consumed []event.Kind
}

func (s *recordingSink) Consume(_ context.Context, e event.Event) error {
	s.consumed = append(s.consumed, e.Kind())
	return nil
}

func Test_Sinks_Fire_Only_On_Mutation(t *testing.T) {
	req := require.New(t)
	sink := &recordingSink{}
	engine := newTestEngine(sink)
	ctx := context.Background()
	seedRoom(t, engine, 1)

	req.NoError(engine.Apply(ctx, event.MessageReceived{Message: msg(1, 1, 10)}))
	// Duplicate delivery and dangling references must not reach the sinks.
	req.NoError(engine.Apply(ctx, event.MessageReceived{Message: msg(1, 1, 10)}))
	req.NoError(engine.Apply(ctx, event.MessageDeleted{Room: 1, ID: 99}))
	req.NoError(engine.Apply(ctx, event.MessageDeleted{Room: 1, ID: 1}))

	req.Equal([]event.Kind{event.MessageReceivedKind, event.MessageDeletedKind}, sink.consumed)
}

func Test_Redelivered_Page_Does_Not_Renotify_Sinks(t *testing.T) {
	req := require.New(t)
	sink := &recordingSink{}
	engine := newTestEngine(sink)
	ctx := context.Background()
	seedRoom(t, engine, 1)

	page := event.MessagesLoaded{Room: 1, Messages: []domain.Message{
		msg(1, 1, 10), msg(1, 2, 20), msg(1, 3, 30),
	}}
	req.NoError(engine.Apply(ctx, page))
	req.NoError(engine.Apply(ctx, page))

	req.Equal([]event.Kind{event.MessagesLoadedKind}, sink.consumed)
}

func Test_Repeated_Empty_Page_Notifies_Sinks_Once(t *testing.T) {
	req := require.New(t)
	sink := &recordingSink{}
	engine := newTestEngine(sink)
	ctx := context.Background()
	seedRoom(t, engine, 1)

	req.NoError(engine.Apply(ctx, event.MessagesLoaded{Room: 1}))
	req.NoError(engine.Apply(ctx, event.MessagesLoaded{Room: 1}))

	req.True(engine.Snapshot().Room(1).AllLoaded)
	req.Equal([]event.Kind{event.MessagesLoadedKind}, sink.consumed)
}

func Test_Bulk_Sync_Bypasses_Sinks(t *testing.T) {
	req := require.New(t)
	sink := &recordingSink{}
	engine := newTestEngine(sink)
	ctx := context.Background()

	engine.SetUsers(ctx, []wire.UserDTO{{UserID: 1, User: "alice"}})
	engine.SetRooms(ctx, []wire.RoomDTO{{RoomID: 1, Name: "general"}})
	engine.SetOnline(ctx, []domain.UserID{1})

	req.Empty(sink.consumed)
}
