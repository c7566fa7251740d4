// Package domain contains core concepts of the chat client.
// This file defines User entities and presence-related types.
// No transport, storage, or UI logic should be added here.
package domain

type UserID int

// Sex mirrors the server-side enum. Anything the server sends outside
// of "M"/"F" collapses to Secret.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
	SexSecret Sex = "S"
)

func ParseSex(s string) Sex {
	switch s {
	case "M":
		return SexMale
	case "F":
		return SexFemale
	default:
		return SexSecret
	}
}

// User is created on first sighting and never structurally deleted.
// Presence is tracked separately as set membership.
type User struct {
	ID   UserID
	Name string
	Sex  Sex
}
