package wire

import (
	"strconv"
	"time"

	"github.com/samber/lo"

	"chat-sync/domain"
)

// ToUser converts a wire user record into its domain entity.
func ToUser(dto UserDTO) domain.User {
	return domain.User{
		ID:   domain.UserID(dto.UserID),
		Name: dto.User,
		Sex:  domain.ParseSex(dto.Sex),
	}
}

// ToMessage converts a wire message record into its domain entity.
// The wire timestamp is unix milliseconds.
func ToMessage(dto MessageDTO) domain.Message {
	return domain.Message{
		ID:      domain.MessageID(dto.ID),
		Room:    domain.RoomID(dto.RoomID),
		Sender:  domain.UserID(dto.UserID),
		At:      time.UnixMilli(dto.Time).UTC(),
		Content: dto.Content,
		Files:   toFiles(dto.Files),
		Symbol:  dto.Symbol,
		Edited:  dto.Edited,
		Giphy:   dto.Giphy,
		Deleted: dto.Deleted,
	}
}

func ToMessages(dtos []MessageDTO) []domain.Message {
	return lo.Map(dtos, func(dto MessageDTO, _ int) domain.Message {
		return ToMessage(dto)
	})
}

func ToRoomDescriptor(dto RoomDTO) domain.RoomDescriptor {
	return domain.RoomDescriptor{
		ID:            domain.RoomID(dto.RoomID),
		Name:          dto.Name,
		Volume:        dto.Volume,
		Notifications: dto.Notifications,
		Users:         ToUserIDs(dto.Users),
	}
}

func ToUserIDs(ids []int) []domain.UserID {
	return lo.Map(ids, func(id int, _ int) domain.UserID {
		return domain.UserID(id)
	})
}

// toFiles re-keys attachments by numeric id. JSON object keys arrive as
// strings; entries with non-numeric keys are dropped.
func toFiles(files map[string]FileDTO) map[int]domain.File {
	if len(files) == 0 {
		return nil
	}
	out := make(map[int]domain.File, len(files))
	for key, f := range files {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		out[id] = domain.File{URL: f.URL, Type: f.Type, Preview: f.Preview}
	}
	return out
}
