package room

import (
	"time"
)

// Room-level visibility flag
const (
	OverallNone       = 0 // owner only
	OverallPublicRead = 1 // anyone reads, owner edits
	OverallPublicEdit = 2 // anyone edits
	OverallCustom     = 3 // per-user permission rows decide
)

// Per-user access levels
const (
	AccessRead  = 1
	AccessEdit  = 2
	AccessAdmin = 3
)

// Room is a named collaborative text artifact with one owner
type Room struct {
	RoomID            string    `gorm:"primaryKey" json:"room_id"`
	RoomName          string    `json:"room_name"`
	CreateTime        time.Time `json:"create_time"`
	OverallPermission int       `json:"overall_permission"`
	OwnerUserID       string    `json:"owner_user_id"`
}

// Content is the room's text blob, created together with the room
type Content struct {
	RoomID  string `gorm:"primaryKey" json:"room_id"`
	Content string `json:"content"`
}

// Permission is an explicit (room, user) access override. It is only
// consulted when the room's overall permission is custom.
type Permission struct {
	RoomID     string `gorm:"primaryKey" json:"room_id"`
	UserID     string `gorm:"primaryKey" json:"user_id"`
	Permission int    `json:"permission"`
}

// RoomSummary is one row of the main-page room list
type RoomSummary struct {
	RoomID        string `json:"room_id"`
	RoomName      string `json:"room_name"`
	OwnerUserName string `json:"owner_user_name"`
	Permission    int    `json:"permission"`
}

// OwnedRoom is one row of the owner's document list
type OwnedRoom struct {
	RoomID            string `json:"room_id"`
	RoomName          string `json:"room_name"`
	OverallPermission int    `json:"overall_permission"`
}
