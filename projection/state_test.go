package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-sync/domain"
)

func seededState() *State {
	s := NewState()
	s.Users[7] = domain.User{ID: 7, Name: "bob", Sex: domain.SexMale}
	s.Online[7] = struct{}{}
	s.Rooms[1] = &domain.Room{
		ID:    1,
		Name:  "general",
		Users: []domain.UserID{7},
		Messages: []domain.Message{
			{ID: 1, Room: 1, Sender: 7, At: time.UnixMilli(100).UTC(), Content: "hello"},
		},
	}
	return s
}

func Test_MessageByID(t *testing.T) {
	req := require.New(t)
	s := seededState()

	m, ok := s.MessageByID(1, 1)
	req.True(ok)
	req.Equal("hello", m.Content)

	_, ok = s.MessageByID(1, 2)
	req.False(ok)
	_, ok = s.MessageByID(9, 1)
	req.False(ok)
}

func Test_OnlineList_Is_Sorted(t *testing.T) {
	req := require.New(t)
	s := NewState()
	s.Online[9] = struct{}{}
	s.Online[2] = struct{}{}
	s.Online[5] = struct{}{}

	req.Equal([]domain.UserID{2, 5, 9}, s.OnlineList())
}

func Test_Clone_Is_Independent(t *testing.T) {
	req := require.New(t)
	s := seededState()

	clone := s.Clone()
	req.Equal(s, clone)

	// Mutating the original must not leak into the clone.
	s.Users[8] = domain.User{ID: 8, Name: "eve"}
	delete(s.Online, 7)
	s.Rooms[1].Name = "renamed"
	s.Rooms[1].Users[0] = 99
	s.Rooms[1].Messages[0].Content = "tampered"

	req.NotContains(clone.Users, domain.UserID(8))
	req.True(clone.IsOnline(7))
	req.Equal("general", clone.Rooms[1].Name)
	req.Equal(domain.UserID(7), clone.Rooms[1].Users[0])
	req.Equal("hello", clone.Rooms[1].Messages[0].Content)
}
