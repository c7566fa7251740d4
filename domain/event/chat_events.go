package event

import "chat-sync/domain"

// MessagesLoaded carries one fetched history page for a room.
// An empty page is the sentinel for "no more history".
type MessagesLoaded struct {
	Room     domain.RoomID
	Messages []domain.Message
}

func (MessagesLoaded) Kind() Kind { return MessagesLoadedKind }

type MessageDeleted struct {
	Room domain.RoomID
	ID   domain.MessageID
}

func (MessageDeleted) Kind() Kind { return MessageDeletedKind }

// MessageEdited carries the full replacement field set, not a patch.
type MessageEdited struct {
	Message domain.Message
}

func (MessageEdited) Kind() Kind { return MessageEditedKind }

// MessageReceived is a freshly arrived live message, as opposed to a
// history page entry. Delivery is at-least-once across reconnects.
type MessageReceived struct {
	Message domain.Message
}

func (MessageReceived) Kind() Kind { return MessageReceivedKind }

// OnlineUserAdded announces presence. User carries the full entity so an
// unknown id can be created on first sighting. Online is the server's view
// of the whole presence set at emission time.
type OnlineUserAdded struct {
	User   domain.User
	Online []domain.UserID
}

func (OnlineUserAdded) Kind() Kind { return OnlineUserAddedKind }

type OnlineUserRemoved struct {
	User   domain.UserID
	Online []domain.UserID
}

func (OnlineUserRemoved) Kind() Kind { return OnlineUserRemovedKind }

type RoomDeleted struct {
	Room domain.RoomID
}

func (RoomDeleted) Kind() Kind { return RoomDeletedKind }

// RoomUsersReplaced carries the new full membership set for a room,
// replacing whatever the client held.
type RoomUsersReplaced struct {
	Room  domain.RoomID
	Users []domain.UserID
}

func (RoomUsersReplaced) Kind() Kind { return RoomUsersReplacedKind }

// RoomAdded describes a freshly created room. It has no history to page in.
type RoomAdded struct {
	Room          domain.RoomID
	Name          string
	Volume        int
	Notifications bool
	Users         []domain.UserID
}

func (RoomAdded) Kind() Kind { return RoomAddedKind }
