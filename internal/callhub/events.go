package callhub

import (
	"encoding/json"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

// decodeEvent turns a raw websocket frame into one of the typed inbound
// event structs. Required fields are checked here so handlers never see
// a partially-populated event; anything malformed or unknown comes back
// as an invalid_payload error without touching any state.
func decodeEvent(raw []byte) (any, error) {
	var env models.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(errs.KindInvalidPayload, "malformed event frame", err)
	}
	if env.Event == "" {
		return nil, errs.New(errs.KindInvalidPayload, "event name missing")
	}

	switch env.Event {
	case models.EventJoin:
		var ev models.JoinEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, errs.Wrap(errs.KindInvalidPayload, "malformed join payload", err)
		}
		if ev.RoomID == "" || ev.UserID == "" {
			return nil, errs.New(errs.KindInvalidPayload, "join requires roomId and userId")
		}
		if !ev.Role.Valid() {
			return nil, errs.New(errs.KindInvalidPayload, "join role must be user or companion")
		}
		return ev, nil

	case models.EventOffer, models.EventAnswer:
		var ev models.SDPEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, errs.Wrap(errs.KindInvalidPayload, "malformed "+env.Event+" payload", err)
		}
		if ev.RoomID == "" || ev.From == "" || ev.SDP == "" {
			return nil, errs.New(errs.KindInvalidPayload, env.Event+" requires roomId, from and sdp")
		}
		if env.Event == models.EventAnswer {
			return answerEvent(ev), nil
		}
		return offerEvent(ev), nil

	case models.EventCandidate:
		var ev models.CandidateEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, errs.Wrap(errs.KindInvalidPayload, "malformed candidate payload", err)
		}
		if ev.RoomID == "" || ev.From == "" || len(ev.Candidate) == 0 {
			return nil, errs.New(errs.KindInvalidPayload, "candidate requires roomId, from and candidate")
		}
		return ev, nil

	case models.EventLeave:
		var ev models.LeaveEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, errs.Wrap(errs.KindInvalidPayload, "malformed leave payload", err)
		}
		if ev.RoomID == "" || ev.UserID == "" {
			return nil, errs.New(errs.KindInvalidPayload, "leave requires roomId and userId")
		}
		return ev, nil

	case models.EventEnd:
		var ev models.EndEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, errs.Wrap(errs.KindInvalidPayload, "malformed end payload", err)
		}
		if ev.RoomID == "" {
			return nil, errs.New(errs.KindInvalidPayload, "end requires roomId")
		}
		return ev, nil

	case models.EventMessage:
		var ev models.MessageEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return nil, errs.Wrap(errs.KindInvalidPayload, "malformed message payload", err)
		}
		if ev.From == "" || ev.Text == "" {
			return nil, errs.New(errs.KindInvalidPayload, "message requires from and text")
		}
		return ev, nil
	}

	return nil, errs.New(errs.KindInvalidPayload, "unknown event: "+env.Event)
}

// offerEvent and answerEvent share a payload shape; distinct types keep
// the dispatch switch honest about which one arrived.
type offerEvent models.SDPEvent
type answerEvent models.SDPEvent
