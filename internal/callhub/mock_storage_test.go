package callhub_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

// MockStorage is a testify double of storage.RoomStore for failure
// injection; happy-path tests use the real in-memory store instead.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateRoom(ctx context.Context, companionID, userID string, ttl time.Duration) (*models.Room, error) {
	args := m.Called(ctx, companionID, userID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockStorage) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockStorage) SetRoomStatus(ctx context.Context, roomID string, status models.RoomStatus) error {
	args := m.Called(ctx, roomID, status)
	return args.Error(0)
}

func (m *MockStorage) DeleteRoom(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *MockStorage) AppendChat(ctx context.Context, roomID string, msg models.ChatMessage) error {
	args := m.Called(ctx, roomID, msg)
	return args.Error(0)
}

func (m *MockStorage) RecentChat(ctx context.Context, roomID string, limit int) ([]models.ChatMessage, error) {
	args := m.Called(ctx, roomID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockStorage) AppendSignal(ctx context.Context, roomID string, rec models.SignalRecord) error {
	args := m.Called(ctx, roomID, rec)
	return args.Error(0)
}

func (m *MockStorage) Signals(ctx context.Context, roomID string) ([]models.SignalRecord, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SignalRecord), args.Error(1)
}
