package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Recording links an uploaded session recording to its room.
type Recording struct {
	// RecordingID is the client-assigned identifier of the upload.
	RecordingID string `gorm:"primaryKey" json:"recordingId"`
	// RoomID is the room the recording belongs to.
	RoomID string `gorm:"index;not null" json:"roomId"`
	// URL points at the stored media file.
	URL string `gorm:"type:text;not null" json:"url"`
	// UploadedAt is when the recording metadata was received.
	UploadedAt time.Time `json:"uploadedAt"`
}

// CallArchive is the durable trace of a finished call, written when a
// room is ended. Rooms themselves live in the room store and vanish
// with their TTL; the archive row outlives them.
type CallArchive struct {
	gorm.Model

	RoomID      string `gorm:"index;not null"`
	CompanionID string
	UserID      string
	// Participants are the user ids that were joined when the call ended.
	Participants pq.StringArray `gorm:"type:text[]"`
	Reason       string
	EndedAt      time.Time
}
