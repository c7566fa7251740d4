package sink

import (
	"context"
	"sync"

	"github.com/abadojack/whatlanggo"

	"chat-sync/domain"
	"chat-sync/domain/event"
)

// RoomStats aggregates per-room session counters for the debug endpoint.
type RoomStats struct {
	Received  int            `json:"received"`
	Loaded    int            `json:"loaded"`
	Edited    int            `json:"edited"`
	Deleted   int            `json:"deleted"`
	Languages map[string]int `json:"languages"`
}

// StatsSink keeps live counters over the committed stream, including a
// language histogram of message content. Guarded by a mutex because the
// debug server reads it from its own goroutine.
type StatsSink struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*RoomStats
}

func NewStatsSink() *StatsSink {
	return &StatsSink{rooms: make(map[domain.RoomID]*RoomStats)}
}

func (s *StatsSink) Consume(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch evt := e.(type) {
	case event.MessageReceived:
		stats := s.room(evt.Message.Room)
		stats.Received++
		s.countLanguage(stats, evt.Message.Content)
	case event.MessagesLoaded:
		stats := s.room(evt.Room)
		for _, m := range evt.Messages {
			stats.Loaded++
			s.countLanguage(stats, m.Content)
		}
	case event.MessageEdited:
		s.room(evt.Message.Room).Edited++
	case event.MessageDeleted:
		s.room(evt.Room).Deleted++
	}
	return nil
}

// Stats returns a copy suitable for JSON rendering.
func (s *StatsSink) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make(map[domain.RoomID]RoomStats, len(s.rooms))
	for id, stats := range s.rooms {
		cp := *stats
		cp.Languages = make(map[string]int, len(stats.Languages))
		for lang, n := range stats.Languages {
			cp.Languages[lang] = n
		}
		rooms[id] = cp
	}
	return map[string]any{"rooms": rooms}
}

func (s *StatsSink) room(id domain.RoomID) *RoomStats {
	stats, ok := s.rooms[id]
	if !ok {
		stats = &RoomStats{Languages: make(map[string]int)}
		s.rooms[id] = stats
	}
	return stats
}

// countLanguage tags content with its detected language. Short or ambiguous
// content is skipped rather than guessed.
func (s *StatsSink) countLanguage(stats *RoomStats, content string) {
	if content == "" {
		return
	}
	info := whatlanggo.Detect(content)
	if !info.IsReliable() {
		return
	}
	stats.Languages[info.Lang.Iso6391()]++
}
