package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/callhub"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/iceconfig"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/storage"
)

// CompanionCatalog is the slice of the companion service the REST
// surface needs: a list and an existence check.
type CompanionCatalog interface {
	FetchCompanions(ctx context.Context) []models.Companion
	CompanionByID(ctx context.Context, id string) (*models.Companion, error)
}

// RecordingSaver persists recording metadata.
type RecordingSaver interface {
	SaveRecording(ctx context.Context, rec *models.Recording) error
}

// Handler carries the collaborators of the REST surface.
type Handler struct {
	Hub        *callhub.Hub
	Store      storage.RoomStore
	Recordings RecordingSaver
	Companions CompanionCatalog
	ICE        *iceconfig.Provider
	SessionTTL time.Duration
}

func NewHandler(hub *callhub.Hub, store storage.RoomStore, recordings RecordingSaver, companions CompanionCatalog, ice *iceconfig.Provider, sessionTTL time.Duration) *Handler {
	return &Handler{
		Hub:        hub,
		Store:      store,
		Recordings: recordings,
		Companions: companions,
		ICE:        ice,
		SessionTTL: sessionTTL,
	}
}

// fail maps a taxonomy error to its HTTP status.
func fail(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	c.JSON(errs.HTTPStatus(kind), gin.H{"error": err.Error(), "kind": kind})
}
