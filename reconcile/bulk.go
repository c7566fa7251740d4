package reconcile

import (
	"context"
	"fmt"

	"chat-sync/domain"
	"chat-sync/wire"
)

// Bulk sync operations, called at connection establishment and on resync.
// They are wholesale replacements outside the tagged event stream, so they
// bypass the sinks: they carry no timeline data of their own.

// SetUsers replaces the entire user collection.
func (e *Engine) SetUsers(_ context.Context, users []wire.UserDTO) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Users = make(map[domain.UserID]domain.User, len(users))
	for _, dto := range users {
		u := wire.ToUser(dto)
		e.state.Users[u.ID] = u
	}
	e.log.Debug(fmt.Sprintf("Set %d users", len(users)))
}

// SetRooms replaces the room collection wholesale. For rooms that already
// exist locally the message timeline and AllLoaded flag survive: history
// already fetched must not be discarded on resync. Everything else comes
// from the incoming descriptor.
func (e *Engine) SetRooms(_ context.Context, rooms []wire.RoomDTO) {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := make(map[domain.RoomID]*domain.Room, len(rooms))
	for _, dto := range rooms {
		desc := wire.ToRoomDescriptor(dto)
		room := &domain.Room{
			ID:            desc.ID,
			Name:          desc.Name,
			Volume:        desc.Volume,
			Notifications: desc.Notifications,
		}
		room.SetUsers(desc.Users)
		if old := e.state.Rooms[desc.ID]; old != nil {
			room.Messages = old.Messages
			room.AllLoaded = old.AllLoaded
		}
		next[desc.ID] = room
	}
	e.state.Rooms = next
	e.log.Debug(fmt.Sprintf("Set %d rooms", len(rooms)))
}

// SetOnline replaces the presence set wholesale.
func (e *Engine) SetOnline(_ context.Context, online []domain.UserID) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Online = make(map[domain.UserID]struct{}, len(online))
	for _, id := range online {
		e.state.Online[id] = struct{}{}
	}
	e.log.Debug(fmt.Sprintf("Set %d online users", len(online)))
}
