package room

import (
	"collaborative-docs-backend/internal/errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type CreateDocRequest struct {
	RoomName string `json:"room_name" binding:"required,min=1,max=255"`
	UserID   string `json:"user_id" binding:"required"`
}

// CreateDoc creates a document with empty content
func (h *Handler) CreateDoc(c *gin.Context) {
	var form CreateDocRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), form.RoomName, form.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":     "Document created",
		"room_id": room.RoomID,
	})
}

// GetContent returns the room's text, empty for unknown rooms
func (h *Handler) GetContent(c *gin.Context) {
	roomID := c.Query("room_id")
	if roomID == "" {
		c.Error(errors.BadRequest("room_id is required", nil))
		return
	}

	content, err := h.service.GetContent(c.Request.Context(), roomID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id": roomID,
		"content": content,
	})
}

type UpdateContentRequest struct {
	RoomID  string `json:"room_id" binding:"required"`
	Content string `json:"content"`
}

func (h *Handler) UpdateContent(c *gin.Context) {
	var form UpdateContentRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	if err := h.service.UpdateContent(c.Request.Context(), form.RoomID, form.Content); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":     "Saved",
		"room_id": form.RoomID,
	})
}

// ListRooms returns every room with the caller's effective permission
func (h *Handler) ListRooms(c *gin.Context) {
	userID := c.Query("userid")
	if userID == "" {
		c.Error(errors.BadRequest("userid is required", nil))
		return
	}

	rooms, err := h.service.ListRoomsForUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// EditPermission responds with a bare JSON boolean
func (h *Handler) EditPermission(c *gin.Context) {
	roomID := c.Query("room_id")
	userID := c.Query("user_id")
	if roomID == "" || userID == "" {
		c.Error(errors.BadRequest("room_id and user_id are required", nil))
		return
	}

	allowed, err := h.service.CanEdit(c.Request.Context(), roomID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, allowed)
}

// ReadPermission responds with a bare JSON boolean
func (h *Handler) ReadPermission(c *gin.Context) {
	roomID := c.Query("room_id")
	userID := c.Query("user_id")
	if roomID == "" || userID == "" {
		c.Error(errors.BadRequest("room_id and user_id are required", nil))
		return
	}

	allowed, err := h.service.CanRead(c.Request.Context(), roomID, userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, allowed)
}

// GetDocs lists the rooms a user owns
func (h *Handler) GetDocs(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.Error(errors.BadRequest("user_id is required", nil))
		return
	}

	docs, err := h.service.ListOwnedRooms(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"docs": docs})
}

type UpdateVisibilityRequest struct {
	RoomID            string `json:"room_id" binding:"required"`
	OverallPermission *int   `json:"overall_permission" binding:"required"`
}

func (h *Handler) UpdateVisibility(c *gin.Context) {
	var form UpdateVisibilityRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	if err := h.service.SetVisibility(c.Request.Context(), form.RoomID, *form.OverallPermission); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Visibility updated"})
}

type AddUsersRequest struct {
	RoomID string           `json:"room_id" binding:"required"`
	Users  []UserPermission `json:"users" binding:"required,dive"`
}

func (h *Handler) AddUsers(c *gin.Context) {
	var form AddUsersRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	if err := h.service.AddPermissions(c.Request.Context(), form.RoomID, form.Users); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type RemoveUserRequest struct {
	RoomID string `json:"room_id" binding:"required"`
	UserID string `json:"user_id" binding:"required"`
}

func (h *Handler) RemoveUser(c *gin.Context) {
	var form RemoveUserRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	if err := h.service.RemovePermission(c.Request.Context(), form.RoomID, form.UserID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type ChangePermissionRequest struct {
	RoomID     string `json:"room_id" binding:"required"`
	UserID     string `json:"user_id" binding:"required"`
	Permission int    `json:"permission" binding:"required,permlevel"`
}

func (h *Handler) ChangePermission(c *gin.Context) {
	var form ChangePermissionRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	if err := h.service.ChangePermission(c.Request.Context(), form.RoomID, form.UserID, form.Permission); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type RenameRoomRequest struct {
	RoomID   string `json:"room_id" binding:"required"`
	RoomName string `json:"room_name" binding:"required,min=1,max=255"`
}

func (h *Handler) RenameRoom(c *gin.Context) {
	var form RenameRoomRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	if err := h.service.Rename(c.Request.Context(), form.RoomID, form.RoomName); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type DeleteRoomRequest struct {
	RoomID string `json:"room_id" binding:"required"`
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	var form DeleteRoomRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), form.RoomID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
