package room

import (
	"github.com/go-playground/validator/v10"
)

// CanEdit reports whether a user may edit the room. override is the user's
// permission row, nil when no row exists.
func CanEdit(room *Room, userID string, override *Permission) bool {
	if userID == room.OwnerUserID {
		return true
	}

	switch room.OverallPermission {
	case OverallPublicEdit:
		return true
	case OverallCustom:
		return override != nil && override.Permission >= AccessEdit
	default:
		return false
	}
}

// CanRead reports whether a user may read the room. With a custom room and no
// permission row, both read and edit are denied: the room can appear in lists
// yet stay unreadable.
func CanRead(room *Room, userID string, override *Permission) bool {
	if userID == room.OwnerUserID {
		return true
	}

	switch room.OverallPermission {
	case OverallPublicRead, OverallPublicEdit:
		return true
	case OverallCustom:
		return override != nil
	default:
		return false
	}
}

// EffectivePermission is the level shown in room lists: the per-user override
// when present, otherwise the room's overall permission.
func EffectivePermission(room *Room, override *Permission) int {
	if override != nil {
		return override.Permission
	}
	return room.OverallPermission
}

// ValidatePermissionLevel backs the "permlevel" binding tag
func ValidatePermissionLevel(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= AccessRead && v <= AccessAdmin
}
