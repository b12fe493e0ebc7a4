package ai

import (
	"collaborative-docs-backend/internal/errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

type ChatRequest struct {
	RoomContent string `json:"room_content"`
	Message     string `json:"message" binding:"required"`
	IncludeDoc  bool   `json:"include_doc"`
}

// Chat forwards the message to the completion API and returns its reply
func (h *Handler) Chat(c *gin.Context) {
	var form ChatRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.NewValidationError(err))
		return
	}

	prompt := BuildPrompt(form.Message, form.RoomContent, form.IncludeDoc)

	reply, err := h.client.Complete(c.Request.Context(), prompt)
	if err != nil {
		log.Printf("AI Error: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":  "AI service unavailable",
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
