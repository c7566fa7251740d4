package wire

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/errors"
)

// Envelope tags the server uses for the stream this client consumes.
const (
	ChatHandler = "chat"
	WsHandler   = "ws"

	ActionSetWsID = "setWsId"
)

var validate = validator.New()

type decoder func(raw []byte) (event.Event, error)

var decoders = map[Envelope]decoder{
	{Handler: ChatHandler, Action: string(event.MessagesLoadedKind)}:    decodeLoadMessages,
	{Handler: ChatHandler, Action: string(event.MessageDeletedKind)}:    decodeDeleteMessage,
	{Handler: ChatHandler, Action: string(event.MessageEditedKind)}:     decodeEditMessage,
	{Handler: ChatHandler, Action: string(event.MessageReceivedKind)}:   decodePrintMessage,
	{Handler: ChatHandler, Action: string(event.OnlineUserAddedKind)}:   decodeAddOnlineUser,
	{Handler: ChatHandler, Action: string(event.OnlineUserRemovedKind)}: decodeRemoveOnlineUser,
	{Handler: ChatHandler, Action: string(event.RoomDeletedKind)}:       decodeDeleteRoom,
	{Handler: ChatHandler, Action: string(event.RoomUsersReplacedKind)}: decodeLeaveUser,
	{Handler: ChatHandler, Action: string(event.RoomAddedKind)}:         decodeAddRoom,
}

// ParseEnvelope reads only the two dispatch tags of a frame.
func ParseEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return env, nil
}

// Decode maps one server frame to its typed event. A tag pair with no
// registered decoder yields ErrUnknownEventKind; a frame failing JSON or
// required-field validation yields ErrInvalidPayload. Either way the frame
// is unusable and the caller drops it without touching the projection.
func Decode(raw []byte) (event.Event, error) {
	env, err := ParseEnvelope(raw)
	if err != nil {
		return nil, err
	}
	dec, ok := decoders[env]
	if !ok {
		return nil, fmt.Errorf("%w: (%s, %s)", errors.ErrUnknownEventKind, env.Handler, env.Action)
	}
	return dec(raw)
}

// DecodeBootstrap parses the connect-time frame carrying the server's full
// room/user/presence view.
func DecodeBootstrap(raw []byte) (BootstrapDTO, error) {
	return unmarshal[BootstrapDTO](raw)
}

func unmarshal[T any](raw []byte) (T, error) {
	var dto T
	if err := json.Unmarshal(raw, &dto); err != nil {
		return dto, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if err := validate.Struct(dto); err != nil {
		return dto, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return dto, nil
}

func decodeLoadMessages(raw []byte) (event.Event, error) {
	dto, err := unmarshal[loadMessagesDTO](raw)
	if err != nil {
		return nil, err
	}
	return event.MessagesLoaded{
		Room:     domain.RoomID(dto.RoomID),
		Messages: ToMessages(dto.Content),
	}, nil
}

func decodeDeleteMessage(raw []byte) (event.Event, error) {
	dto, err := unmarshal[deleteMessageDTO](raw)
	if err != nil {
		return nil, err
	}
	return event.MessageDeleted{
		Room: domain.RoomID(dto.RoomID),
		ID:   domain.MessageID(dto.ID),
	}, nil
}

func decodeEditMessage(raw []byte) (event.Event, error) {
	dto, err := unmarshal[MessageDTO](raw)
	if err != nil {
		return nil, err
	}
	return event.MessageEdited{Message: ToMessage(dto)}, nil
}

func decodePrintMessage(raw []byte) (event.Event, error) {
	dto, err := unmarshal[MessageDTO](raw)
	if err != nil {
		return nil, err
	}
	return event.MessageReceived{Message: ToMessage(dto)}, nil
}

func decodeAddOnlineUser(raw []byte) (event.Event, error) {
	dto, err := unmarshal[changeOnlineDTO](raw)
	if err != nil {
		return nil, err
	}
	return event.OnlineUserAdded{
		User: domain.User{
			ID:   domain.UserID(dto.UserID),
			Name: dto.User,
			Sex:  domain.ParseSex(dto.Sex),
		},
		Online: ToUserIDs(dto.Content),
	}, nil
}

func decodeRemoveOnlineUser(raw []byte) (event.Event, error) {
	dto, err := unmarshal[changeOnlineDTO](raw)
	if err != nil {
		return nil, err
	}
	return event.OnlineUserRemoved{
		User:   domain.UserID(dto.UserID),
		Online: ToUserIDs(dto.Content),
	}, nil
}

func decodeDeleteRoom(raw []byte) (event.Event, error) {
	dto, err := unmarshal[deleteRoomDTO](raw)
	if err != nil {
		return nil, err
	}
	return event.RoomDeleted{Room: domain.RoomID(dto.RoomID)}, nil
}

func decodeLeaveUser(raw []byte) (event.Event, error) {
	dto, err := unmarshal[leaveUserDTO](raw)
	if err != nil {
		return nil, err
	}
	return event.RoomUsersReplaced{
		Room:  domain.RoomID(dto.RoomID),
		Users: ToUserIDs(dto.Users),
	}, nil
}

func decodeAddRoom(raw []byte) (event.Event, error) {
	dto, err := unmarshal[addRoomDTO](raw)
	if err != nil {
		return nil, err
	}
	return event.RoomAdded{
		Room:          domain.RoomID(dto.RoomID),
		Name:          dto.Name,
		Volume:        dto.Volume,
		Notifications: dto.Notifications,
		Users:         ToUserIDs(dto.Users),
	}, nil
}
