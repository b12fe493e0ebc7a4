package user

import (
	"fmt"
	"hash/fnv"
	"time"
)

// User represents a user in the system
type User struct {
	ID           string `gorm:"primaryKey"`
	UserName     string
	Email        string `gorm:"uniqueIndex"`
	Password     string `gorm:"-"` // input only, not stored in db
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SafeUser represents a user without sensitive information
type SafeUser struct {
	ID          string `json:"id"`
	UserName    string `json:"user_name"`
	Email       string `json:"email"`
	AvatarColor string `json:"avatarColor"`
}

// ToSafeUser converts a User to a SafeUser
func (u *User) ToSafeUser() SafeUser {
	return SafeUser{
		ID:          u.ID,
		UserName:    u.UserName,
		Email:       u.Email,
		AvatarColor: AvatarColor(u.ID),
	}
}

// AvatarColor derives a stable display color from a user id
func AvatarColor(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	v := h.Sum32()

	r := (v & 0xFF0000) >> 16
	g := (v & 0x00FF00) >> 8
	b := v & 0x0000FF
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
