package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

func TestMemoryStoreCreateRoom(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	room, err := s.CreateRoom(context.Background(), "c1", "u1", 60*time.Minute)
	require.NoError(t, err)

	assert.NotEmpty(t, room.RoomID)
	assert.Equal(t, "c1", room.CompanionID)
	assert.Equal(t, "u1", room.UserID)
	assert.Equal(t, models.RoomStatusActive, room.Status)
	assert.Equal(t, now.Add(60*time.Minute), room.ExpiresAt)
}

func TestMemoryStoreGetRoomNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetRoom(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

// Reading past the deadline flips the room to expired, and a second
// read sees the same answer.
func TestMemoryStoreLazyExpiryIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	room, err := s.CreateRoom(context.Background(), "c1", "u1", time.Hour)
	require.NoError(t, err)

	// One second past expiry.
	s.now = func() time.Time { return now.Add(time.Hour + time.Second) }

	got, err := s.GetRoom(context.Background(), room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusExpired, got.Status)

	got, err = s.GetRoom(context.Background(), room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusExpired, got.Status)
	// Expiry never extends or resets the deadline.
	assert.Equal(t, room.ExpiresAt, got.ExpiresAt)
}

func TestMemoryStoreStatusTransitionsAreMonotone(t *testing.T) {
	s := NewMemoryStore()
	room, err := s.CreateRoom(context.Background(), "c1", "u1", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.SetRoomStatus(ctx, room.RoomID, models.RoomStatusInactive))

	// Same-status set is a no-op, reversal is a conflict.
	assert.NoError(t, s.SetRoomStatus(ctx, room.RoomID, models.RoomStatusInactive))
	err = s.SetRoomStatus(ctx, room.RoomID, models.RoomStatusActive)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	err = s.SetRoomStatus(ctx, room.RoomID, models.RoomStatusExpired)
	require.Error(t, err)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))

	got, err := s.GetRoom(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusInactive, got.Status)
}

func TestMemoryStoreSetStatusDoesNotTouchExpiry(t *testing.T) {
	s := NewMemoryStore()
	room, err := s.CreateRoom(context.Background(), "c1", "u1", time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.SetRoomStatus(context.Background(), room.RoomID, models.RoomStatusInactive))

	got, err := s.GetRoom(context.Background(), room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, room.ExpiresAt, got.ExpiresAt)
}

func TestMemoryStoreDeleteRoom(t *testing.T) {
	s := NewMemoryStore()
	room, err := s.CreateRoom(context.Background(), "c1", "u1", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.AppendChat(ctx, room.RoomID, models.ChatMessage{From: "u1", Text: "hi"}))
	require.NoError(t, s.DeleteRoom(ctx, room.RoomID))

	_, err = s.GetRoom(ctx, room.RoomID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	msgs, err := s.RecentChat(ctx, room.RoomID, 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	err = s.DeleteRoom(ctx, room.RoomID)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestMemoryStoreChatHistoryCap(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 1; i <= 101; i++ {
		msg := models.ChatMessage{From: "u1", Text: fmt.Sprintf("message-%d", i)}
		require.NoError(t, s.AppendChat(ctx, "r1", msg))
	}

	msgs, err := s.RecentChat(ctx, "r1", 100)
	require.NoError(t, err)
	require.Len(t, msgs, 100)
	assert.Equal(t, "message-2", msgs[0].Text)
	assert.Equal(t, "message-101", msgs[99].Text)
}

func TestMemoryStoreSignalHistoryCap(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		rec := models.SignalRecord{Type: models.SignalCandidate, From: "u1"}
		require.NoError(t, s.AppendSignal(ctx, "r1", rec))
	}

	recs, err := s.Signals(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, recs, SignalLogCap)
}

func TestMemoryStoreRecentChatLimit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		require.NoError(t, s.AppendChat(ctx, "r1", models.ChatMessage{Text: fmt.Sprintf("m%d", i)}))
	}

	msgs, err := s.RecentChat(ctx, "r1", 3)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "m8", msgs[0].Text)
	assert.Equal(t, "m10", msgs[2].Text)
}
