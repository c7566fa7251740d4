package domain

import (
	"sort"

	"github.com/samber/lo"
)

type RoomID int

// Room aggregates the per-room state the client reconciles: membership,
// settings, and the message timeline.
//
// Messages is kept sorted ascending by timestamp at all times, with at most
// one entry per MessageID. Users holds no duplicates. AllLoaded reports that
// the full history has been paged in; it flips to true when a history fetch
// returns an empty page.
type Room struct {
	ID            RoomID
	Name          string
	Volume        int
	Notifications bool
	Users         []UserID
	Messages      []Message
	AllLoaded     bool
}

// RoomDescriptor is the message-less room shape the server sends on room
// creation and on resync. It never carries timeline data.
type RoomDescriptor struct {
	ID            RoomID
	Name          string
	Volume        int
	Notifications bool
	Users         []UserID
}

// FindMessage returns the message with the given id, reading the current timeline.
func (r *Room) FindMessage(id MessageID) (Message, bool) {
	for _, m := range r.Messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

func (r *Room) HasMessage(id MessageID) bool {
	_, ok := r.FindMessage(id)
	return ok
}

// InsertMessage places m before the first existing message whose timestamp
// exceeds m's, so messages arriving with equal timestamps keep arrival order.
// The timeline stays sorted ascending. Callers are responsible for the
// one-entry-per-id invariant (see HasMessage).
func (r *Room) InsertMessage(m Message) {
	i := 0
	for ; i < len(r.Messages); i++ {
		if r.Messages[i].At.After(m.At) {
			break
		}
	}
	r.Messages = append(r.Messages, Message{})
	copy(r.Messages[i+1:], r.Messages[i:])
	r.Messages[i] = m
}

// MergeMessages folds one history page into the timeline. Entries whose id is
// already present are dropped, the rest are merged by timestamp. The page is
// re-sorted first rather than trusted: pages may overlap in time range with
// already-loaded content, so a blind append would break the sort invariant.
// Reports whether the timeline changed; a fully redelivered page does not.
func (r *Room) MergeMessages(page []Message) bool {
	seen := make(map[MessageID]struct{}, len(r.Messages))
	for _, m := range r.Messages {
		seen[m.ID] = struct{}{}
	}

	novel := lo.Filter(page, func(m Message, _ int) bool {
		_, dup := seen[m.ID]
		return !dup
	})
	if len(novel) == 0 {
		return false
	}
	sort.SliceStable(novel, func(i, j int) bool {
		return novel[i].At.Before(novel[j].At)
	})

	merged := make([]Message, 0, len(r.Messages)+len(novel))
	i, j := 0, 0
	for i < len(r.Messages) && j < len(novel) {
		if r.Messages[i].At.After(novel[j].At) {
			merged = append(merged, novel[j])
			j++
		} else {
			merged = append(merged, r.Messages[i])
			i++
		}
	}
	merged = append(merged, r.Messages[i:]...)
	merged = append(merged, novel[j:]...)
	r.Messages = merged
	return true
}

// RemoveMessage deletes the entry with the given id.
// Reports whether anything was removed.
func (r *Room) RemoveMessage(id MessageID) bool {
	for i, m := range r.Messages {
		if m.ID == id {
			r.Messages = append(r.Messages[:i], r.Messages[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceMessage swaps the stored fields of the message with m's, in place.
// The stored timestamp is kept: edits never move a message in the timeline.
// Reports whether the target existed.
func (r *Room) ReplaceMessage(m Message) bool {
	for i := range r.Messages {
		if r.Messages[i].ID == m.ID {
			m.At = r.Messages[i].At
			r.Messages[i] = m
			return true
		}
	}
	return false
}

// SetUsers replaces the membership set wholesale, dropping duplicates.
func (r *Room) SetUsers(ids []UserID) {
	r.Users = lo.Uniq(ids)
}
