package reconcile

import (
	"fmt"

	"chat-sync/domain"
	"chat-sync/domain/event"
)

// One handler per event kind. Each runs under the engine lock, reads the
// current projection, and reports whether it mutated anything; only mutating
// events reach the sinks.

func (e *Engine) applyMessagesLoaded(ev event.MessagesLoaded) bool {
	room := e.state.Room(ev.Room)
	if room == nil {
		e.log.Warn(fmt.Sprintf("Unable to find room %d to load messages into", ev.Room))
		return false
	}
	if len(ev.Messages) == 0 {
		// Empty page is the no-more-history sentinel.
		if room.AllLoaded {
			return false
		}
		room.AllLoaded = true
		return true
	}
	// A redelivered page merges nothing and must not reach the sinks again.
	return room.MergeMessages(ev.Messages)
}

func (e *Engine) applyMessageDeleted(ev event.MessageDeleted) bool {
	room := e.state.Room(ev.Room)
	if room == nil {
		e.log.Warn(fmt.Sprintf("Unable to find room %d to delete message %d", ev.Room, ev.ID))
		return false
	}
	if !room.RemoveMessage(ev.ID) {
		// May race with a not-yet-loaded history page.
		e.log.Warn(fmt.Sprintf("Unable to find message %d in room %d to delete it", ev.ID, ev.Room))
		return false
	}
	return true
}

func (e *Engine) applyMessageEdited(ev event.MessageEdited) bool {
	room := e.state.Room(ev.Message.Room)
	if room == nil {
		e.log.Warn(fmt.Sprintf("Unable to find room %d to edit message %d", ev.Message.Room, ev.Message.ID))
		return false
	}
	if !room.ReplaceMessage(ev.Message) {
		e.log.Warn(fmt.Sprintf("Unable to find message %d in room %d to edit it", ev.Message.ID, ev.Message.Room))
		return false
	}
	return true
}

func (e *Engine) applyMessageReceived(ev event.MessageReceived) bool {
	room := e.state.Room(ev.Message.Room)
	if room == nil {
		e.log.Warn(fmt.Sprintf("Unable to find room %d to receive message %d", ev.Message.Room, ev.Message.ID))
		return false
	}
	if room.HasMessage(ev.Message.ID) {
		// Duplicate delivery after a reconnect.
		e.log.Debug(fmt.Sprintf("Skipping message %d, already in room %d", ev.Message.ID, ev.Message.Room))
		return false
	}
	room.InsertMessage(ev.Message)
	return true
}

func (e *Engine) applyOnlineUserAdded(ev event.OnlineUserAdded) bool {
	if _, known := e.state.Users[ev.User.ID]; !known {
		e.state.Users[ev.User.ID] = ev.User
	}
	e.state.Online[ev.User.ID] = struct{}{}
	return true
}

func (e *Engine) applyOnlineUserRemoved(ev event.OnlineUserRemoved) bool {
	if !e.state.IsOnline(ev.User) {
		// Absence is benign: presence may already have been resynced.
		return false
	}
	delete(e.state.Online, ev.User)
	return true
}

func (e *Engine) applyRoomDeleted(ev event.RoomDeleted) bool {
	if e.state.Room(ev.Room) == nil {
		e.log.Warn(fmt.Sprintf("Unable to find room %d to delete", ev.Room))
		return false
	}
	delete(e.state.Rooms, ev.Room)
	return true
}

func (e *Engine) applyRoomUsersReplaced(ev event.RoomUsersReplaced) bool {
	room := e.state.Room(ev.Room)
	if room == nil {
		e.log.Warn(fmt.Sprintf("Unable to find room %d to replace its users", ev.Room))
		return false
	}
	room.SetUsers(ev.Users)
	return true
}

func (e *Engine) applyRoomAdded(ev event.RoomAdded) bool {
	// Always creates; a duplicate id overwrites. A fresh room has no
	// history to page in, so AllLoaded starts true.
	room := &domain.Room{
		ID:            ev.Room,
		Name:          ev.Name,
		Volume:        ev.Volume,
		Notifications: ev.Notifications,
		AllLoaded:     true,
	}
	room.SetUsers(ev.Users)
	e.state.Rooms[ev.Room] = room
	return true
}
