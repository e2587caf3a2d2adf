package storage

import (
	"context"
	"time"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

// Retention caps for the per-room histories.
const (
	ChatLogCap   = 100
	SignalLogCap = 20
)

// RoomStore is the lifecycle and history store for video rooms.
//
// GetRoom performs lazy expiry: reading an active room past its
// ExpiresAt flips it to expired before returning, so callers must
// tolerate a status change as part of a read. SetRoomStatus only moves
// a room forward (active to inactive or expired); it never touches
// ExpiresAt.
//
// Implementations translate their backend failures into errs kinds:
// a missing room is KindNotFound, an unreachable or timed-out backend
// is KindStoreUnavailable, and an illegal status transition is
// KindConflict.
type RoomStore interface {
	CreateRoom(ctx context.Context, companionID, userID string, ttl time.Duration) (*models.Room, error)
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)
	SetRoomStatus(ctx context.Context, roomID string, status models.RoomStatus) error
	DeleteRoom(ctx context.Context, roomID string) error

	AppendChat(ctx context.Context, roomID string, msg models.ChatMessage) error
	RecentChat(ctx context.Context, roomID string, limit int) ([]models.ChatMessage, error)

	AppendSignal(ctx context.Context, roomID string, rec models.SignalRecord) error
	Signals(ctx context.Context, roomID string) ([]models.SignalRecord, error)
}

// allowedTransition reports whether a room may move from to next.
// Setting the current status again is a harmless no-op.
func allowedTransition(from, next models.RoomStatus) bool {
	if from == next {
		return true
	}
	return from == models.RoomStatusActive &&
		(next == models.RoomStatusInactive || next == models.RoomStatusExpired)
}
