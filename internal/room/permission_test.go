package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeRoom(overall int) *Room {
	return &Room{
		RoomID:            "room-1",
		RoomName:          "Design Notes",
		OverallPermission: overall,
		OwnerUserID:       "owner-1",
	}
}

func TestOwnerAlwaysHasAccess(t *testing.T) {
	for _, overall := range []int{OverallNone, OverallPublicRead, OverallPublicEdit, OverallCustom} {
		r := makeRoom(overall)
		assert.True(t, CanRead(r, "owner-1", nil), "overall=%d", overall)
		assert.True(t, CanEdit(r, "owner-1", nil), "overall=%d", overall)
	}
}

func TestPublicReadRoom(t *testing.T) {
	r := makeRoom(OverallPublicRead)

	assert.True(t, CanRead(r, "stranger", nil))
	assert.False(t, CanEdit(r, "stranger", nil))
}

func TestPublicEditRoom(t *testing.T) {
	r := makeRoom(OverallPublicEdit)

	assert.True(t, CanRead(r, "stranger", nil))
	assert.True(t, CanEdit(r, "stranger", nil))
}

func TestNoneRoomDeniesNonOwner(t *testing.T) {
	r := makeRoom(OverallNone)

	assert.False(t, CanRead(r, "stranger", nil))
	assert.False(t, CanEdit(r, "stranger", nil))
}

func TestCustomRoomWithoutRowDeniesEverything(t *testing.T) {
	r := makeRoom(OverallCustom)

	assert.False(t, CanRead(r, "stranger", nil))
	assert.False(t, CanEdit(r, "stranger", nil))
}

func TestCustomRoomWithRow(t *testing.T) {
	r := makeRoom(OverallCustom)

	tests := []struct {
		name     string
		level    int
		wantRead bool
		wantEdit bool
	}{
		{"read row", AccessRead, true, false},
		{"edit row", AccessEdit, true, true},
		{"admin row", AccessAdmin, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override := &Permission{RoomID: r.RoomID, UserID: "member", Permission: tt.level}
			assert.Equal(t, tt.wantRead, CanRead(r, "member", override))
			assert.Equal(t, tt.wantEdit, CanEdit(r, "member", override))
		})
	}
}

func TestEffectivePermission(t *testing.T) {
	r := makeRoom(OverallPublicRead)

	assert.Equal(t, OverallPublicRead, EffectivePermission(r, nil))

	override := &Permission{RoomID: r.RoomID, UserID: "member", Permission: AccessEdit}
	assert.Equal(t, AccessEdit, EffectivePermission(r, override))
}
