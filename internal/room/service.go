package room

import (
	"collaborative-docs-backend/internal/errors"
	"context"
	defError "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateRoom(ctx context.Context, name, ownerID string) (*Room, error)
	GetContent(ctx context.Context, roomID string) (string, error)
	UpdateContent(ctx context.Context, roomID, content string) error
	ListRoomsForUser(ctx context.Context, userID string) ([]RoomSummary, error)
	ListOwnedRooms(ctx context.Context, userID string) ([]OwnedRoom, error)
	CanRead(ctx context.Context, roomID, userID string) (bool, error)
	CanEdit(ctx context.Context, roomID, userID string) (bool, error)
	SetVisibility(ctx context.Context, roomID string, level int) error
	AddPermissions(ctx context.Context, roomID string, grants []UserPermission) error
	ChangePermission(ctx context.Context, roomID, userID string, level int) error
	RemovePermission(ctx context.Context, roomID, userID string) error
	Rename(ctx context.Context, roomID, name string) error
	Delete(ctx context.Context, roomID string) error
}

// UserPermission is one grant of the bulk add-users call
type UserPermission struct {
	UserID     string `json:"user_id" binding:"required"`
	Permission int    `json:"permission" binding:"required,permlevel"`
}

type DefaultService struct {
	repository RoomRepository
}

func NewService(repository RoomRepository) Service {
	return &DefaultService{repository: repository}
}

// CreateRoom inserts a room with empty content. New rooms default to
// public-read, and the creator gets an explicit edit row.
func (s *DefaultService) CreateRoom(ctx context.Context, name, ownerID string) (*Room, error) {
	room := &Room{
		RoomID:            uuid.NewString(),
		RoomName:          name,
		CreateTime:        time.Now().UTC(),
		OverallPermission: OverallPublicRead,
		OwnerUserID:       ownerID,
	}

	if err := s.repository.CreateRoom(ctx, room, AccessEdit); err != nil {
		return nil, errors.BadRequest("Failed to create document", err)
	}

	return room, nil
}

func (s *DefaultService) GetContent(ctx context.Context, roomID string) (string, error) {
	return s.repository.GetContent(ctx, roomID)
}

func (s *DefaultService) UpdateContent(ctx context.Context, roomID, content string) error {
	err := s.repository.UpdateContent(ctx, roomID, content)
	if defError.Is(err, gorm.ErrRecordNotFound) {
		return errors.BadRequest("Document not found", err)
	}
	return err
}

func (s *DefaultService) ListRoomsForUser(ctx context.Context, userID string) ([]RoomSummary, error) {
	return s.repository.ListRoomsForUser(ctx, userID)
}

func (s *DefaultService) ListOwnedRooms(ctx context.Context, userID string) ([]OwnedRoom, error) {
	return s.repository.ListOwnedRooms(ctx, userID)
}

// CanRead resolves read access. Unknown rooms resolve to false.
func (s *DefaultService) CanRead(ctx context.Context, roomID, userID string) (bool, error) {
	room, override, err := s.fetchRoomAndOverride(ctx, roomID, userID)
	if err != nil || room == nil {
		return false, err
	}
	return CanRead(room, userID, override), nil
}

// CanEdit resolves edit access. Unknown rooms resolve to false.
func (s *DefaultService) CanEdit(ctx context.Context, roomID, userID string) (bool, error) {
	room, override, err := s.fetchRoomAndOverride(ctx, roomID, userID)
	if err != nil || room == nil {
		return false, err
	}
	return CanEdit(room, userID, override), nil
}

func (s *DefaultService) fetchRoomAndOverride(ctx context.Context, roomID, userID string) (*Room, *Permission, error) {
	room, err := s.repository.FindByID(ctx, roomID)
	if err != nil {
		if defError.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	override, err := s.repository.GetPermission(ctx, roomID, userID)
	if err != nil {
		return nil, nil, err
	}

	return room, override, nil
}

func (s *DefaultService) SetVisibility(ctx context.Context, roomID string, level int) error {
	if level < OverallNone || level > OverallCustom {
		return errors.BadRequest("Invalid visibility level", nil)
	}

	err := s.repository.UpdateVisibility(ctx, roomID, level)
	if defError.Is(err, gorm.ErrRecordNotFound) {
		return errors.BadRequest("Document not found", err)
	}
	return err
}

// AddPermissions upserts one permission row per grant
func (s *DefaultService) AddPermissions(ctx context.Context, roomID string, grants []UserPermission) error {
	if len(grants) == 0 {
		return errors.BadRequest("users must not be empty", nil)
	}

	for _, grant := range grants {
		if err := s.repository.UpsertPermission(ctx, roomID, grant.UserID, grant.Permission); err != nil {
			return errors.BadRequest("Failed to add user permission", err)
		}
	}
	return nil
}

func (s *DefaultService) ChangePermission(ctx context.Context, roomID, userID string, level int) error {
	err := s.repository.UpdatePermission(ctx, roomID, userID, level)
	if defError.Is(err, gorm.ErrRecordNotFound) {
		return errors.BadRequest("Permission not found", err)
	}
	return err
}

func (s *DefaultService) RemovePermission(ctx context.Context, roomID, userID string) error {
	err := s.repository.RemovePermission(ctx, roomID, userID)
	if defError.Is(err, gorm.ErrRecordNotFound) {
		return errors.BadRequest("Permission not found", err)
	}
	return err
}

func (s *DefaultService) Rename(ctx context.Context, roomID, name string) error {
	if name == "" {
		return errors.BadRequest("Room name cannot be empty", nil)
	}

	err := s.repository.Rename(ctx, roomID, name)
	if defError.Is(err, gorm.ErrRecordNotFound) {
		return errors.BadRequest("Document not found", err)
	}
	return err
}

func (s *DefaultService) Delete(ctx context.Context, roomID string) error {
	err := s.repository.DeleteRoom(ctx, roomID)
	if defError.Is(err, gorm.ErrRecordNotFound) {
		return errors.BadRequest("Document not found", err)
	}
	return err
}
