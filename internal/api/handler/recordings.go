package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

type recordingRequest struct {
	RecordingID string `json:"recordingId" binding:"required"`
	RoomID      string `json:"roomId" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
}

// PostRecording stores recording metadata for a room. The room only has
// to exist; an ended or expired call may still upload its recording.
func (h *Handler) PostRecording(c *gin.Context) {
	var req recordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, errs.Wrap(errs.KindInvalidPayload, "invalid recording upload", err))
		return
	}

	if _, err := h.Store.GetRoom(c.Request.Context(), req.RoomID); err != nil {
		fail(c, err)
		return
	}

	rec := &models.Recording{
		RecordingID: req.RecordingID,
		RoomID:      req.RoomID,
		URL:         req.URL,
		UploadedAt:  time.Now().UTC(),
	}
	if err := h.Recordings.SaveRecording(c.Request.Context(), rec); err != nil {
		fail(c, err)
		return
	}

	log.Printf("stored recording %s for room %s", req.RecordingID, req.RoomID)
	c.JSON(http.StatusOK, rec)
}
