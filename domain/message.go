// Package domain contains core concepts of the chat client.
// This file defines Message entities and related rules.
package domain

import "time"

// MessageID is only meaningful within its room: identity is (RoomID, MessageID).
type MessageID int

// File is an attachment reference. The client never holds the bytes,
// only server-side locations.
type File struct {
	URL     string
	Type    string
	Preview string
}

// Message represents one chat entry of a room timeline.
// A message is inserted once, optionally edited in place, and removed
// outright when the server reports it deleted.
type Message struct {
	ID      MessageID
	Room    RoomID
	Sender  UserID
	At      time.Time
	Content string
	Files   map[int]File
	Symbol  string
	Giphy   string
	Edited  int
	Deleted bool
}
