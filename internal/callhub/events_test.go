package callhub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/errs"
	"github.com/Pavanyata999/AI-Companion-Video-Call/internal/models"
)

func TestDecodeEventJoin(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"event":"join","data":{"roomId":"r1","userId":"u1","role":"user"}}`))
	require.NoError(t, err)

	join, ok := ev.(models.JoinEvent)
	require.True(t, ok)
	assert.Equal(t, "r1", join.RoomID)
	assert.Equal(t, models.RoleUser, join.Role)
}

func TestDecodeEventOfferAndAnswerAreDistinct(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"event":"offer","data":{"roomId":"r1","from":"u1","sdp":"v=0"}}`))
	require.NoError(t, err)
	_, ok := ev.(offerEvent)
	assert.True(t, ok)

	ev, err = decodeEvent([]byte(`{"event":"answer","data":{"roomId":"r1","from":"c1","sdp":"v=0"}}`))
	require.NoError(t, err)
	_, ok = ev.(answerEvent)
	assert.True(t, ok)
}

func TestDecodeEventRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"truncated frame":    `{"event":"join","data":`,
		"missing event name": `{"data":{"roomId":"r1"}}`,
		"unknown event":      `{"event":"mute","data":{}}`,
		"join without room":  `{"event":"join","data":{"userId":"u1","role":"user"}}`,
		"join bad role":      `{"event":"join","data":{"roomId":"r1","userId":"u1","role":"admin"}}`,
		"offer without sdp":  `{"event":"offer","data":{"roomId":"r1","from":"u1"}}`,
		"candidate empty":    `{"event":"candidate","data":{"roomId":"r1","from":"u1"}}`,
		"leave without user": `{"event":"leave","data":{"roomId":"r1"}}`,
		"end without room":   `{"event":"end","data":{"reason":"bye"}}`,
		"message empty text": `{"event":"message","data":{"from":"u1","text":""}}`,
	}
	for name, frame := range cases {
		_, err := decodeEvent([]byte(frame))
		require.Error(t, err, name)
		assert.Equal(t, errs.KindInvalidPayload, errs.KindOf(err), name)
	}
}

func TestDecodeEventCandidateKeepsRawPayload(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"event":"candidate","data":{"roomId":"r1","from":"u1","candidate":{"sdpMid":"0"}}}`))
	require.NoError(t, err)

	cand := ev.(models.CandidateEvent)
	assert.JSONEq(t, `{"sdpMid":"0"}`, string(cand.Candidate))
}

func TestDecodeEventEndReasonOptional(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"event":"end","data":{"roomId":"r1"}}`))
	require.NoError(t, err)
	assert.Empty(t, ev.(models.EndEvent).Reason)
}
