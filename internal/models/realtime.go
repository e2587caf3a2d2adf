package models

import (
	"encoding/json"
	"time"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
)

// Envelope is the wire frame of the streaming surface. Every inbound
// and outbound websocket message is {"event": ..., "data": ...}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound is a message headed to a client; Data is marshalled as-is.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Inbound event names.
const (
	EventJoin      = "join"
	EventOffer     = "offer"
	EventAnswer    = "answer"
	EventCandidate = "candidate"
	EventLeave     = "leave"
	EventEnd       = "end"
	EventMessage   = "message"
)

// Outbound event names.
const (
	EventUserJoined = "user_joined"
	EventUserLeft   = "user_left"
	EventCallEnded  = "call_ended"
	EventError      = "error"
)

// Inbound payloads.

type JoinEvent struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

type SDPEvent struct {
	RoomID string `json:"roomId"`
	From   string `json:"from"`
	SDP    string `json:"sdp"`
}

type CandidateEvent struct {
	RoomID    string          `json:"roomId"`
	From      string          `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

type LeaveEvent struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type EndEvent struct {
	RoomID string `json:"roomId"`
	Reason string `json:"reason,omitempty"`
}

type MessageEvent struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// Outbound payloads.

type UserJoinedPayload struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

type UserLeftPayload struct {
	UserID string `json:"userId"`
}

type SDPPayload struct {
	From string `json:"from"`
	SDP  string `json:"sdp"`
}

type CandidatePayload struct {
	From      string          `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

type CallEndedPayload struct {
	Reason string `json:"reason"`
}

type MessagePayload struct {
	From      string    `json:"from"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type ErrorPayload struct {
	Message string    `json:"message"`
	Kind    errs.Kind `json:"kind"`
}
