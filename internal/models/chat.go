package models

import (
	"encoding/json"
	"time"
)

// ChatMessage is one text message exchanged inside a room.
type ChatMessage struct {
	RoomID    string    `json:"roomId,omitempty"`
	From      string    `json:"from"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SignalType tags the kind of WebRTC negotiation payload a record holds.
type SignalType string

const (
	SignalOffer     SignalType = "offer"
	SignalAnswer    SignalType = "answer"
	SignalCandidate SignalType = "candidate"
)

// SignalRecord is a stored copy of a relayed negotiation payload. The
// payload is opaque to the backend; it is kept for diagnostics and
// late-join replay, not for correctness of an exchange in progress.
type SignalRecord struct {
	RoomID    string          `json:"roomId,omitempty"`
	Type      SignalType      `json:"type"`
	From      string          `json:"from"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}
