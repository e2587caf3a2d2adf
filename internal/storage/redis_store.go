package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

// Key layout: one hash per room ("room:{id}") carrying the room fields
// with a key-level TTL equal to the room lifetime, plus one capped list
// per room for chat ("chat:{id}") and one for signaling history
// ("signal:{id}"). Orphaned rooms self-delete through the TTL without
// an explicit sweeper.
const (
	roomKeyPrefix   = "room:"
	chatKeyPrefix   = "chat:"
	signalKeyPrefix = "signal:"

	defaultOpTimeout = 5 * time.Second
)

// RedisStore is the durable RoomStore variant.
type RedisStore struct {
	rdb       *redis.Client
	opTimeout time.Duration
}

// NewRedisStore wraps an already-connected client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, opTimeout: defaultOpTimeout}
}

// withTimeout bounds every store call so a stalled backend surfaces as
// KindStoreUnavailable instead of hanging the caller.
func (s *RedisStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func storeErr(op string, err error) error {
	return errs.Wrap(errs.KindStoreUnavailable, "redis "+op+" failed", err)
}

func (s *RedisStore) CreateRoom(ctx context.Context, companionID, userID string, ttl time.Duration) (*models.Room, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	room := &models.Room{
		RoomID:      uuid.New().String(),
		CompanionID: companionID,
		UserID:      userID,
		Status:      models.RoomStatusActive,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}

	// Hash and TTL go in one transaction so a failure can never leave
	// a room key behind with no expiry.
	key := roomKeyPrefix + room.RoomID
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"roomId":      room.RoomID,
		"companionId": room.CompanionID,
		"userId":      room.UserID,
		"status":      string(room.Status),
		"createdAt":   room.CreatedAt.Format(time.RFC3339Nano),
		"expiresAt":   room.ExpiresAt.Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, storeErr("hset", err)
	}
	return room, nil
}

func (s *RedisStore) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	data, err := s.rdb.HGetAll(ctx, roomKeyPrefix+roomID).Result()
	if err != nil {
		return nil, storeErr("hgetall", err)
	}
	if len(data) == 0 {
		return nil, errs.New(errs.KindNotFound, "room not found")
	}

	room, err := roomFromHash(data)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "corrupt room record", err)
	}

	// Lazy expiry: the key TTL usually gets there first, but a clock
	// can read an active room past its deadline before Redis reaps it.
	if room.Status == models.RoomStatusActive && time.Now().UTC().After(room.ExpiresAt) {
		room.Status = models.RoomStatusExpired
		if err := s.rdb.HSet(ctx, roomKeyPrefix+roomID, "status", string(models.RoomStatusExpired)).Err(); err != nil {
			log.Printf("WARNING: failed to persist lazy expiry for room %s: %v", roomID, err)
		}
	}
	return room, nil
}

func (s *RedisStore) SetRoomStatus(ctx context.Context, roomID string, status models.RoomStatus) error {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if !allowedTransition(room.Status, status) {
		return errs.New(errs.KindConflict, "room status cannot move from "+string(room.Status)+" to "+string(status))
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.rdb.HSet(ctx, roomKeyPrefix+roomID, "status", string(status)).Err(); err != nil {
		return storeErr("hset", err)
	}
	return nil
}

func (s *RedisStore) DeleteRoom(ctx context.Context, roomID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.rdb.Del(ctx, roomKeyPrefix+roomID, chatKeyPrefix+roomID, signalKeyPrefix+roomID).Result()
	if err != nil {
		return storeErr("del", err)
	}
	if n == 0 {
		return errs.New(errs.KindNotFound, "room not found")
	}
	return nil
}

func (s *RedisStore) AppendChat(ctx context.Context, roomID string, msg models.ChatMessage) error {
	return s.appendCapped(ctx, chatKeyPrefix+roomID, roomID, msg, ChatLogCap)
}

func (s *RedisStore) RecentChat(ctx context.Context, roomID string, limit int) ([]models.ChatMessage, error) {
	return rangeCapped[models.ChatMessage](ctx, s, chatKeyPrefix+roomID, limit)
}

func (s *RedisStore) AppendSignal(ctx context.Context, roomID string, rec models.SignalRecord) error {
	return s.appendCapped(ctx, signalKeyPrefix+roomID, roomID, rec, SignalLogCap)
}

func (s *RedisStore) Signals(ctx context.Context, roomID string) ([]models.SignalRecord, error) {
	return rangeCapped[models.SignalRecord](ctx, s, signalKeyPrefix+roomID, 0)
}

// appendCapped pushes a JSON entry onto a list and trims it to capacity.
// The list inherits the room key's remaining TTL so history does not
// outlive its room.
func (s *RedisStore) appendCapped(ctx context.Context, key, roomID string, v any, capacity int) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := json.Marshal(v)
	if err != nil {
		return errs.Wrap(errs.KindInternal, "marshal history entry", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, int64(capacity-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr("lpush", err)
	}

	if ttl, err := s.rdb.TTL(ctx, roomKeyPrefix+roomID).Result(); err == nil && ttl > 0 {
		_ = s.rdb.Expire(ctx, key, ttl).Err()
	}
	return nil
}

// rangeCapped reads back the newest limit entries and reverses them
// into insertion order (the list itself is newest-first via LPUSH).
func rangeCapped[T any](ctx context.Context, s *RedisStore, key string, limit int) ([]T, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	raw, err := s.rdb.LRange(ctx, key, 0, stop).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, storeErr("lrange", err)
	}

	out := make([]T, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var v T
		if err := json.Unmarshal([]byte(raw[i]), &v); err != nil {
			log.Printf("WARNING: skipping corrupt history entry in %s: %v", key, err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func roomFromHash(data map[string]string) (*models.Room, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, data["createdAt"])
	if err != nil {
		return nil, err
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, data["expiresAt"])
	if err != nil {
		return nil, err
	}
	return &models.Room{
		RoomID:      data["roomId"],
		CompanionID: data["companionId"],
		UserID:      data["userId"],
		Status:      models.RoomStatus(data["status"]),
		CreatedAt:   createdAt,
		ExpiresAt:   expiresAt,
	}, nil
}
