package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

type chatMessageRequest struct {
	RoomID string `json:"roomId" binding:"required"`
	From   string `json:"from" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// PostChatMessage is the REST fallback for chat: it persists the
// message and triggers the same broadcast as the streaming message
// event, so websocket members see REST messages too.
func (h *Handler) PostChatMessage(c *gin.Context) {
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.Wrap(errs.KindInvalidPayload, "invalid chat message", err))
		return
	}

	room, err := h.Store.GetRoom(c.Request.Context(), req.RoomID)
	if err != nil {
		fail(c, err)
		return
	}
	if room.Status == models.RoomStatusExpired {
		fail(c, errs.New(errs.KindExpired, "room has expired"))
		return
	}

	msg := models.ChatMessage{
		RoomID:    req.RoomID,
		From:      req.From,
		Text:      req.Text,
		Timestamp: time.Now().UTC(),
	}
	if err := h.Store.AppendChat(c.Request.Context(), req.RoomID, msg); err != nil {
		fail(c, err)
		return
	}

	h.Hub.BroadcastChat(req.RoomID, msg)

	c.JSON(http.StatusOK, gin.H{
		"status":    "sent",
		"messageId": "msg_" + uuid.New().String(),
	})
}

// GetChatMessages returns the most recent chat history for a room, in
// insertion order. Default limit 50, capped by what the store retains.
func (h *Handler) GetChatMessages(c *gin.Context) {
	roomID := c.Param("roomId")

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	messages, err := h.Store.RecentChat(c.Request.Context(), roomID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomId": roomID, "messages": messages})
}
