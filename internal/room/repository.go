package room

import (
	"context"
	defError "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository interface {
	CreateRoom(ctx context.Context, room *Room, ownerPermission int) error
	FindByID(ctx context.Context, roomID string) (*Room, error)
	GetContent(ctx context.Context, roomID string) (string, error)
	UpdateContent(ctx context.Context, roomID, content string) error
	ListRoomsForUser(ctx context.Context, userID string) ([]RoomSummary, error)
	ListOwnedRooms(ctx context.Context, userID string) ([]OwnedRoom, error)
	UpdateVisibility(ctx context.Context, roomID string, level int) error
	GetPermission(ctx context.Context, roomID, userID string) (*Permission, error)
	UpsertPermission(ctx context.Context, roomID, userID string, level int) error
	UpdatePermission(ctx context.Context, roomID, userID string, level int) error
	RemovePermission(ctx context.Context, roomID, userID string) error
	Rename(ctx context.Context, roomID, name string) error
	DeleteRoom(ctx context.Context, roomID string) error
}

type RoomRepositoryImpl struct {
	db *gorm.DB
}

// NewRepository creates a new room repository
func NewRepository(db *gorm.DB) RoomRepository {
	return &RoomRepositoryImpl{db: db}
}

// CreateRoom inserts the room, its empty content row and the owner's
// permission row as one transaction. No partial state becomes visible.
func (r *RoomRepositoryImpl) CreateRoom(ctx context.Context, room *Room, ownerPermission int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}

		if err := tx.Create(&Content{RoomID: room.RoomID, Content: ""}).Error; err != nil {
			return err
		}

		return tx.Create(&Permission{
			RoomID:     room.RoomID,
			UserID:     room.OwnerUserID,
			Permission: ownerPermission,
		}).Error
	})
}

func (r *RoomRepositoryImpl) FindByID(ctx context.Context, roomID string) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).Where("room_id = ?", roomID).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetContent returns the empty string for unknown rooms, not an error
func (r *RoomRepositoryImpl) GetContent(ctx context.Context, roomID string) (string, error) {
	var content Content
	err := r.db.WithContext(ctx).Where("room_id = ?", roomID).First(&content).Error
	if defError.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return content.Content, nil
}

func (r *RoomRepositoryImpl) UpdateContent(ctx context.Context, roomID, content string) error {
	result := r.db.WithContext(ctx).Model(&Content{}).
		Where("room_id = ?", roomID).
		Update("content", content)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListRoomsForUser lists every room with the owner's name and the viewer's
// effective permission (per-user override, else the overall flag).
func (r *RoomRepositoryImpl) ListRoomsForUser(ctx context.Context, userID string) ([]RoomSummary, error) {
	var rows []RoomSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			r.room_id,
			r.room_name,
			u.user_name AS owner_user_name,
			COALESCE(p.permission, r.overall_permission) AS permission
		FROM rooms r
		JOIN users u
			ON r.owner_user_id = u.id
		LEFT JOIN permissions p
			ON r.room_id = p.room_id
			AND p.user_id = ?
		ORDER BY r.create_time DESC
	`, userID).Scan(&rows).Error
	return rows, err
}

func (r *RoomRepositoryImpl) ListOwnedRooms(ctx context.Context, userID string) ([]OwnedRoom, error) {
	var rows []OwnedRoom
	err := r.db.WithContext(ctx).Model(&Room{}).
		Where("owner_user_id = ?", userID).
		Order("create_time DESC").
		Select("room_id", "room_name", "overall_permission").
		Scan(&rows).Error
	return rows, err
}

func (r *RoomRepositoryImpl) UpdateVisibility(ctx context.Context, roomID string, level int) error {
	result := r.db.WithContext(ctx).Model(&Room{}).
		Where("room_id = ?", roomID).
		Update("overall_permission", level)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetPermission returns nil without error when no row exists
func (r *RoomRepositoryImpl) GetPermission(ctx context.Context, roomID, userID string) (*Permission, error) {
	var permission Permission
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&permission).Error
	if defError.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

func (r *RoomRepositoryImpl) UpsertPermission(ctx context.Context, roomID, userID string, level int) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"permission"}),
	}).Create(&Permission{
		RoomID:     roomID,
		UserID:     userID,
		Permission: level,
	}).Error
}

func (r *RoomRepositoryImpl) UpdatePermission(ctx context.Context, roomID, userID string, level int) error {
	result := r.db.WithContext(ctx).Model(&Permission{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("permission", level)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepositoryImpl) RemovePermission(ctx context.Context, roomID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&Permission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepositoryImpl) Rename(ctx context.Context, roomID, name string) error {
	result := r.db.WithContext(ctx).Model(&Room{}).
		Where("room_id = ?", roomID).
		Update("room_name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRoom removes permission and content rows together with the room in
// one transaction, so reads after a delete never see stale rows.
func (r *RoomRepositoryImpl) DeleteRoom(ctx context.Context, roomID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", roomID).Delete(&Permission{}).Error; err != nil {
			return err
		}

		if err := tx.Where("room_id = ?", roomID).Delete(&Content{}).Error; err != nil {
			return err
		}

		result := tx.Where("room_id = ?", roomID).Delete(&Room{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
