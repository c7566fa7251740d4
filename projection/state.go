// Package projection holds the reconciled local view of rooms, users, and
// presence derived from the event stream. Handles lookups and snapshotting.
// It does not consume events or decide merge policy; that is the reconciler.
package projection

import (
	"sort"

	"chat-sync/domain"
)

// State is the aggregate root the reconciler mutates: every handler reads
// and writes this one structure, and it is the unit of atomic commit.
type State struct {
	Users  map[domain.UserID]domain.User
	Rooms  map[domain.RoomID]*domain.Room
	Online map[domain.UserID]struct{}
}

func NewState() *State {
	return &State{
		Users:  make(map[domain.UserID]domain.User),
		Rooms:  make(map[domain.RoomID]*domain.Room),
		Online: make(map[domain.UserID]struct{}),
	}
}

// Room returns the live room entry, or nil when the id is unknown.
func (s *State) Room(id domain.RoomID) *domain.Room {
	return s.Rooms[id]
}

// MessageByID resolves (room, message) against the current projection.
func (s *State) MessageByID(room domain.RoomID, id domain.MessageID) (domain.Message, bool) {
	r, ok := s.Rooms[room]
	if !ok {
		return domain.Message{}, false
	}
	return r.FindMessage(id)
}

// IsOnline reports presence-set membership.
func (s *State) IsOnline(id domain.UserID) bool {
	_, ok := s.Online[id]
	return ok
}

// OnlineList returns the presence set as a sorted slice, for rendering and
// stable test assertions.
func (s *State) OnlineList() []domain.UserID {
	ids := make([]domain.UserID, 0, len(s.Online))
	for id := range s.Online {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a deep copy. Observers get clones so no later commit can
// show them a half-applied state.
func (s *State) Clone() *State {
	out := NewState()
	for id, u := range s.Users {
		out.Users[id] = u
	}
	for id := range s.Online {
		out.Online[id] = struct{}{}
	}
	for id, r := range s.Rooms {
		cp := *r
		cp.Users = append([]domain.UserID(nil), r.Users...)
		cp.Messages = append([]domain.Message(nil), r.Messages...)
		out.Rooms[id] = &cp
	}
	return out
}
