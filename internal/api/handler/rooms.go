package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

// Health is the root health-check endpoint.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "AI Companion Video Call API is running",
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

type createRoomRequest struct {
	CompanionID string `json:"companionId" binding:"required"`
	UserID      string `json:"userId" binding:"required"`
	TTLMinutes  int    `json:"ttlMinutes"`
}

// CreateRoom verifies the companion exists and creates a room with the
// requested lifetime (or the configured default).
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.Wrap(errs.KindInvalidPayload, "invalid room request", err))
		return
	}

	if _, err := h.Companions.CompanionByID(c.Request.Context(), req.CompanionID); err != nil {
		fail(c, err)
		return
	}

	ttl := h.SessionTTL
	if req.TTLMinutes > 0 {
		ttl = time.Duration(req.TTLMinutes) * time.Minute
	}

	room, err := h.Store.CreateRoom(c.Request.Context(), req.CompanionID, req.UserID, ttl)
	if err != nil {
		fail(c, err)
		return
	}

	log.Printf("created room %s for companion %s and user %s", room.RoomID, req.CompanionID, req.UserID)
	c.JSON(http.StatusOK, room)
}

// GetRoom returns room info and live participants. Reading an active
// room past its deadline flips it to expired, which maps to 410.
func (h *Handler) GetRoom(c *gin.Context) {
	roomID := c.Param("roomId")

	room, err := h.Store.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		fail(c, err)
		return
	}
	if room.Status == models.RoomStatusExpired {
		fail(c, errs.New(errs.KindExpired, "room has expired"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roomId":       room.RoomID,
		"status":       room.Status,
		"participants": h.Hub.Participants(room.RoomID),
	})
}

// GetWebRTCConfig forwards the ICE server descriptors.
func (h *Handler) GetWebRTCConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.ICE.ICEConfig())
}

// GetCompanions lists the companion catalog.
func (h *Handler) GetCompanions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"companions": h.Companions.FetchCompanions(c.Request.Context()),
	})
}
