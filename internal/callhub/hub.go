package callhub

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/storage"
)

// CallArchiver records finished calls. Optional; a nil archiver simply
// skips the archive write when a call ends.
type CallArchiver interface {
	ArchiveCall(ctx context.Context, archive *models.CallArchive) error
}

// Hub validates and routes signaling events between the connections of
// a room. Per-connection ordering is preserved because each connection
// feeds its events in from a single read loop; cross-connection order
// is not guaranteed and not needed for WebRTC negotiation.
//
// Validation failures never mutate state and never reach the room; the
// originating connection gets a targeted error event instead. Store
// failures on relay paths are reported the same way, but the relay
// itself still goes out: notifying peers is best-effort and does not
// depend on persistence succeeding.
type Hub struct {
	registry *Registry
	store    storage.RoomStore
	archiver CallArchiver
}

func NewHub(store storage.RoomStore, archiver CallArchiver) *Hub {
	return &Hub{
		registry: NewRegistry(),
		store:    store,
		archiver: archiver,
	}
}

// HandleConnect registers a new connection in the Connected state.
func (h *Hub) HandleConnect(c Client) {
	h.registry.Add(c)
	log.Printf("client %s connected", c.ID())
}

// HandleDisconnect is the implicit leave: if the connection was joined,
// the remaining members get exactly one user_left.
func (h *Hub) HandleDisconnect(c Client) {
	assoc, remaining := h.registry.Remove(c.ID())
	if assoc != nil {
		h.fanout(remaining, models.Outbound{
			Event: models.EventUserLeft,
			Data:  models.UserLeftPayload{UserID: assoc.UserID},
		})
	}
	log.Printf("client %s disconnected", c.ID())
}

// HandleRaw decodes one inbound frame from c and dispatches it.
func (h *Hub) HandleRaw(ctx context.Context, c Client, raw []byte) {
	ev, err := decodeEvent(raw)
	if err != nil {
		h.sendError(c, err)
		return
	}

	switch ev := ev.(type) {
	case models.JoinEvent:
		h.handleJoin(ctx, c, ev)
	case offerEvent:
		h.handleSDP(ctx, c, models.EventOffer, models.SignalOffer, models.SDPEvent(ev))
	case answerEvent:
		h.handleSDP(ctx, c, models.EventAnswer, models.SignalAnswer, models.SDPEvent(ev))
	case models.CandidateEvent:
		h.handleCandidate(ctx, c, ev)
	case models.LeaveEvent:
		h.handleLeave(c, ev)
	case models.EndEvent:
		h.handleEnd(ctx, c, ev)
	case models.MessageEvent:
		h.handleMessage(ctx, c, ev)
	}
}

func (h *Hub) handleJoin(ctx context.Context, c Client, ev models.JoinEvent) {
	room, err := h.store.GetRoom(ctx, ev.RoomID)
	if err != nil {
		h.sendError(c, err)
		return
	}
	switch room.Status {
	case models.RoomStatusExpired:
		h.sendError(c, errs.New(errs.KindExpired, "room has expired"))
		return
	case models.RoomStatusInactive:
		h.sendError(c, errs.New(errs.KindConflict, "room is no longer active"))
		return
	}

	prior, priorRemaining, others, ok := h.registry.Join(c.ID(), ev.RoomID, ev.UserID, ev.Role)
	if !ok {
		h.sendError(c, errs.New(errs.KindConflict, "connection is not registered"))
		return
	}
	if prior != nil {
		// Joining a second room implicitly leaves the first.
		h.fanout(priorRemaining, models.Outbound{
			Event: models.EventUserLeft,
			Data:  models.UserLeftPayload{UserID: prior.UserID},
		})
	}
	h.fanout(others, models.Outbound{
		Event: models.EventUserJoined,
		Data:  models.UserJoinedPayload{UserID: ev.UserID, Role: ev.Role},
	})
	log.Printf("client %s joined room %s as %s", c.ID(), ev.RoomID, ev.Role)
}

func (h *Hub) handleSDP(ctx context.Context, c Client, event string, sigType models.SignalType, ev models.SDPEvent) {
	others, ok := h.peersIn(c, ev.RoomID)
	if !ok {
		return
	}

	rec := models.SignalRecord{
		RoomID:    ev.RoomID,
		Type:      sigType,
		From:      ev.From,
		Payload:   sdpPayload(ev.SDP),
		Timestamp: time.Now().UTC(),
	}
	if err := h.store.AppendSignal(ctx, ev.RoomID, rec); err != nil {
		h.sendError(c, err)
	}

	h.fanout(others, models.Outbound{
		Event: event,
		Data:  models.SDPPayload{From: ev.From, SDP: ev.SDP},
	})
}

func (h *Hub) handleCandidate(ctx context.Context, c Client, ev models.CandidateEvent) {
	others, ok := h.peersIn(c, ev.RoomID)
	if !ok {
		return
	}

	rec := models.SignalRecord{
		RoomID:    ev.RoomID,
		Type:      models.SignalCandidate,
		From:      ev.From,
		Payload:   ev.Candidate,
		Timestamp: time.Now().UTC(),
	}
	if err := h.store.AppendSignal(ctx, ev.RoomID, rec); err != nil {
		h.sendError(c, err)
	}

	h.fanout(others, models.Outbound{
		Event: models.EventCandidate,
		Data:  models.CandidatePayload{From: ev.From, Candidate: ev.Candidate},
	})
}

func (h *Hub) handleMessage(ctx context.Context, c Client, ev models.MessageEvent) {
	assoc, others := h.registry.Peers(c.ID())
	if assoc == nil {
		h.sendError(c, errs.New(errs.KindConflict, "not joined to a room"))
		return
	}

	msg := models.ChatMessage{
		RoomID:    assoc.RoomID,
		From:      ev.From,
		Text:      ev.Text,
		Timestamp: time.Now().UTC(),
	}
	if err := h.store.AppendChat(ctx, assoc.RoomID, msg); err != nil {
		h.sendError(c, err)
	}

	// Chat echoes back to the sender as delivery confirmation, unlike
	// negotiation payloads which only go to the peers.
	out := models.Outbound{
		Event: models.EventMessage,
		Data:  models.MessagePayload{From: msg.From, Text: msg.Text, Timestamp: msg.Timestamp},
	}
	h.fanout(others, out)
	h.deliver(c, out)
}

func (h *Hub) handleLeave(c Client, ev models.LeaveEvent) {
	assoc := h.registry.Association(c.ID())
	if assoc == nil || assoc.RoomID != ev.RoomID {
		h.sendError(c, errs.New(errs.KindConflict, "not joined to room "+ev.RoomID))
		return
	}

	assoc, remaining, ok := h.registry.Leave(c.ID())
	if !ok {
		return
	}
	h.fanout(remaining, models.Outbound{
		Event: models.EventUserLeft,
		Data:  models.UserLeftPayload{UserID: assoc.UserID},
	})
	log.Printf("client %s left room %s", c.ID(), ev.RoomID)
}

func (h *Hub) handleEnd(ctx context.Context, c Client, ev models.EndEvent) {
	assoc := h.registry.Association(c.ID())
	if assoc == nil || assoc.RoomID != ev.RoomID {
		h.sendError(c, errs.New(errs.KindConflict, "not joined to room "+ev.RoomID))
		return
	}

	members := h.registry.Members(ev.RoomID)

	// Persistence is best-effort here: the peers still hear about the
	// call ending even if the store write fails. A failed read skips
	// the status write so the caller sees one error, not two.
	room, err := h.store.GetRoom(ctx, ev.RoomID)
	if err != nil {
		h.sendError(c, err)
	} else if err := h.store.SetRoomStatus(ctx, ev.RoomID, models.RoomStatusInactive); err != nil {
		h.sendError(c, err)
	}
	if h.archiver != nil && room != nil {
		var ids []string
		for _, p := range h.registry.Participants(ev.RoomID) {
			ids = append(ids, p.UserID)
		}
		archive := &models.CallArchive{
			RoomID:       room.RoomID,
			CompanionID:  room.CompanionID,
			UserID:       room.UserID,
			Participants: ids,
			Reason:       ev.Reason,
			EndedAt:      time.Now().UTC(),
		}
		if err := h.archiver.ArchiveCall(ctx, archive); err != nil {
			log.Printf("ERROR: failed to archive call for room %s: %v", ev.RoomID, err)
		}
	}

	h.fanout(members, models.Outbound{
		Event: models.EventCallEnded,
		Data:  models.CallEndedPayload{Reason: ev.Reason},
	})
	log.Printf("call ended in room %s (reason=%q)", ev.RoomID, ev.Reason)
}

// BroadcastChat delivers a chat message that arrived over REST to every
// member of the room, the same fan-out the message event uses.
func (h *Hub) BroadcastChat(roomID string, msg models.ChatMessage) {
	h.fanout(h.registry.Members(roomID), models.Outbound{
		Event: models.EventMessage,
		Data:  models.MessagePayload{From: msg.From, Text: msg.Text, Timestamp: msg.Timestamp},
	})
}

// Participants exposes a room's live membership for the REST surface.
func (h *Hub) Participants(roomID string) []models.Participant {
	return h.registry.Participants(roomID)
}

// peersIn checks that c is joined to roomID and returns the other
// members; on a mismatch it reports a conflict to c.
func (h *Hub) peersIn(c Client, roomID string) ([]Client, bool) {
	assoc, others := h.registry.Peers(c.ID())
	if assoc == nil || assoc.RoomID != roomID {
		h.sendError(c, errs.New(errs.KindConflict, "not joined to room "+roomID))
		return nil, false
	}
	return others, true
}

// fanout delivers an event to every target without blocking. A slow or
// already-gone connection just misses the event; that is logged and
// skipped, never escalated, and never stalls delivery to its peers.
func (h *Hub) fanout(targets []Client, out models.Outbound) {
	for _, c := range targets {
		h.deliver(c, out)
	}
}

func (h *Hub) deliver(c Client, out models.Outbound) {
	select {
	case c.Outbound() <- out:
	default:
		log.Printf("WARNING: dropping %s event for slow client %s", out.Event, c.ID())
	}
}

// sendError reports a failure only to the connection that caused it,
// tagged with its taxonomy kind. The connection stays open and its
// state machine is untouched.
func (h *Hub) sendError(c Client, err error) {
	h.deliver(c, models.Outbound{
		Event: models.EventError,
		Data:  models.ErrorPayload{Message: err.Error(), Kind: errs.KindOf(err)},
	})
}

// sdpPayload stores the opaque blob as a JSON string for the history.
func sdpPayload(sdp string) []byte {
	raw, _ := json.Marshal(sdp)
	return raw
}
