// Package event defines the closed set of server-pushed events the client
// reconciles. Each wire (handler, action) pair decodes to exactly one of
// these types; the reconciler dispatches on the concrete type, so adding an
// event kind without a handler is a compile-time hole, not a runtime one.
package event

type Kind string

const (
	MessagesLoadedKind    Kind = "loadMessages"
	MessageDeletedKind    Kind = "deleteMessage"
	MessageEditedKind     Kind = "editMessage"
	MessageReceivedKind   Kind = "printMessage"
	OnlineUserAddedKind   Kind = "addOnlineUser"
	OnlineUserRemovedKind Kind = "removeOnlineUser"
	RoomDeletedKind       Kind = "deleteRoom"
	RoomUsersReplacedKind Kind = "leaveUser"
	RoomAddedKind         Kind = "addRoom"
)

// Event is implemented only by the types of this package.
type Event interface {
	Kind() Kind
}
