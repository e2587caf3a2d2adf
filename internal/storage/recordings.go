package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

// RecordingStore persists recording metadata and finished-call archives
// in PostgreSQL. Unlike rooms, these rows have no TTL.
type RecordingStore struct {
	db *gorm.DB
}

func NewRecordingStore(db *gorm.DB) *RecordingStore {
	return &RecordingStore{db: db}
}

// Migrate creates or updates the backing tables.
func (s *RecordingStore) Migrate() error {
	return s.db.AutoMigrate(&models.Recording{}, &models.CallArchive{})
}

// SaveRecording upserts a recording row keyed by its recording id.
func (s *RecordingStore) SaveRecording(ctx context.Context, rec *models.Recording) error {
	if err := s.db.WithContext(ctx).Save(rec).Error; err != nil {
		return errs.Wrap(errs.KindStoreUnavailable, "save recording", err)
	}
	return nil
}

// GetRecording looks a recording up by id.
func (s *RecordingStore) GetRecording(ctx context.Context, recordingID string) (*models.Recording, error) {
	var rec models.Recording
	err := s.db.WithContext(ctx).First(&rec, "recording_id = ?", recordingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.New(errs.KindNotFound, "recording not found")
	}
	if err != nil {
		return nil, errs.Wrap(errs.KindStoreUnavailable, "get recording", err)
	}
	return &rec, nil
}

// ArchiveCall writes the durable trace of an ended call.
func (s *RecordingStore) ArchiveCall(ctx context.Context, archive *models.CallArchive) error {
	if err := s.db.WithContext(ctx).Create(archive).Error; err != nil {
		return errs.Wrap(errs.KindStoreUnavailable, "archive call", err)
	}
	return nil
}
