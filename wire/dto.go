// Package wire speaks the server's JSON protocol: DTO shapes, required-field
// validation, and the mapping from the (handler, action) envelope to the
// typed events of domain/event. Conversions are pure; nothing here touches
// the projection.
package wire

// Envelope is the two-part tag present on every server frame.
// Dispatch uses nothing else from the frame.
type Envelope struct {
	Handler string `json:"handler"`
	Action  string `json:"action"`
}

type UserDTO struct {
	UserID int    `json:"userId" validate:"required"`
	User   string `json:"user" validate:"required"`
	Sex    string `json:"sex"`
}

type FileDTO struct {
	URL     string `json:"url"`
	Type    string `json:"type"`
	Preview string `json:"preview"`
}

// MessageDTO is the wire shape shared by editMessage, printMessage, and the
// entries of a loadMessages page. Time is unix milliseconds.
type MessageDTO struct {
	ID      int                `json:"id" validate:"required"`
	RoomID  int                `json:"roomId" validate:"required"`
	UserID  int                `json:"userId" validate:"required"`
	Time    int64              `json:"time" validate:"required"`
	Content string             `json:"content"`
	Files   map[string]FileDTO `json:"files"`
	Symbol  string             `json:"symbol"`
	Edited  int                `json:"edited"`
	Giphy   string             `json:"giphy"`
	Deleted bool               `json:"deleted"`
}

type RoomDTO struct {
	RoomID        int    `json:"roomId" validate:"required"`
	Name          string `json:"name"`
	Volume        int    `json:"volume"`
	Notifications bool   `json:"notifications"`
	Users         []int  `json:"users"`
}

type loadMessagesDTO struct {
	RoomID  int          `json:"roomId" validate:"required"`
	Content []MessageDTO `json:"content" validate:"dive"`
}

type deleteMessageDTO struct {
	RoomID int `json:"roomId" validate:"required"`
	ID     int `json:"id" validate:"required"`
	Edited int `json:"edited"`
}

type changeOnlineDTO struct {
	UserID  int    `json:"userId" validate:"required"`
	User    string `json:"user"`
	Sex     string `json:"sex"`
	Content []int  `json:"content"`
}

type deleteRoomDTO struct {
	RoomID int `json:"roomId" validate:"required"`
}

type leaveUserDTO struct {
	RoomID int   `json:"roomId" validate:"required"`
	Users  []int `json:"users"`
}

type addRoomDTO struct {
	RoomID        int    `json:"roomId" validate:"required"`
	Name          string `json:"name"`
	Volume        int    `json:"volume"`
	Notifications bool   `json:"notifications"`
	Users         []int  `json:"users"`
}

// BootstrapDTO is the first frame after connecting: the server's full view
// of rooms, users, and presence, fed to the bulk sync operations.
type BootstrapDTO struct {
	Rooms  []RoomDTO `json:"rooms"`
	Users  []UserDTO `json:"users"`
	Online []int     `json:"online"`
	WsID   string    `json:"opponentWsId"`
}
