package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

// MemoryStore is the volatile RoomStore: a plain in-process map with no
// background sweeper. TTLs are only checked lazily on read, so a room
// that is never read again stays in memory until the process restarts.
// That leak is an accepted limitation of this mode, not something the
// store tries to paper over.
type MemoryStore struct {
	mu      sync.Mutex
	rooms   map[string]*models.Room
	chat    map[string]*BoundedLog[models.ChatMessage]
	signals map[string]*BoundedLog[models.SignalRecord]

	now func() time.Time
}

// NewMemoryStore creates an empty volatile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:   make(map[string]*models.Room),
		chat:    make(map[string]*BoundedLog[models.ChatMessage]),
		signals: make(map[string]*BoundedLog[models.SignalRecord]),
		now:     time.Now,
	}
}

func (s *MemoryStore) CreateRoom(_ context.Context, companionID, userID string, ttl time.Duration) (*models.Room, error) {
	now := s.now().UTC()
	room := &models.Room{
		RoomID:      uuid.New().String(),
		CompanionID: companionID,
		UserID:      userID,
		Status:      models.RoomStatusActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.RoomID] = room

	out := *room
	return &out, nil
}

func (s *MemoryStore) GetRoom(_ context.Context, roomID string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return nil, errs.New(errs.KindNotFound, "room not found")
	}
	if room.Status == models.RoomStatusActive && s.now().UTC().After(room.ExpiresAt) {
		room.Status = models.RoomStatusExpired
	}

	out := *room
	return &out, nil
}

func (s *MemoryStore) SetRoomStatus(_ context.Context, roomID string, status models.RoomStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return errs.New(errs.KindNotFound, "room not found")
	}
	if !allowedTransition(room.Status, status) {
		return errs.New(errs.KindConflict, "room status cannot move from "+string(room.Status)+" to "+string(status))
	}
	room.Status = status
	return nil
}

func (s *MemoryStore) DeleteRoom(_ context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[roomID]; !ok {
		return errs.New(errs.KindNotFound, "room not found")
	}
	delete(s.rooms, roomID)
	delete(s.chat, roomID)
	delete(s.signals, roomID)
	return nil
}

func (s *MemoryStore) AppendChat(_ context.Context, roomID string, msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.chat[roomID]
	if !ok {
		log = NewBoundedLog[models.ChatMessage](ChatLogCap)
		s.chat[roomID] = log
	}
	log.Append(msg)
	return nil
}

func (s *MemoryStore) RecentChat(_ context.Context, roomID string, limit int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.chat[roomID]
	if !ok {
		return nil, nil
	}
	return log.Tail(limit), nil
}

func (s *MemoryStore) AppendSignal(_ context.Context, roomID string, rec models.SignalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.signals[roomID]
	if !ok {
		log = NewBoundedLog[models.SignalRecord](SignalLogCap)
		s.signals[roomID] = log
	}
	log.Append(rec)
	return nil
}

func (s *MemoryStore) Signals(_ context.Context, roomID string) ([]models.SignalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.signals[roomID]
	if !ok {
		return nil, nil
	}
	return log.Tail(0), nil
}
