package models

import "time"

// RoomStatus is the lifecycle state of a video room. A room starts as
// active and only ever moves forward to inactive or expired.
type RoomStatus string

const (
	RoomStatusActive   RoomStatus = "active"
	RoomStatusInactive RoomStatus = "inactive"
	RoomStatusExpired  RoomStatus = "expired"
)

// Terminal reports whether no further status transition is allowed.
func (s RoomStatus) Terminal() bool {
	return s == RoomStatusInactive || s == RoomStatusExpired
}

// Role identifies which side of the call a participant is on.
type Role string

const (
	RoleUser      Role = "user"
	RoleCompanion Role = "companion"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool { return r == RoleUser || r == RoleCompanion }

// Room is a video call session between one user and one companion.
// ExpiresAt is fixed at creation time; status changes never move it.
type Room struct {
	// RoomID is the unique identifier for the room (UUID).
	RoomID string `json:"roomId"`
	// CompanionID is the catalog id of the companion on the call.
	CompanionID string `json:"companionId"`
	// UserID is the id of the human participant.
	UserID string `json:"userId"`
	// Status is the current lifecycle state.
	Status RoomStatus `json:"status"`
	// CreatedAt is when the room was created.
	CreatedAt time.Time `json:"createdAt"`
	// ExpiresAt is when the room becomes eligible for expiry.
	ExpiresAt time.Time `json:"expiresAt"`
}

// Participant is a live room member as seen by the REST surface.
type Participant struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}
