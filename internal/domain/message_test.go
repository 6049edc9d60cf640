package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseEnvelopeRejectsMalformed(t *testing.T) {
	for _, raw := range []string{`not json`, `{}`, `{"type":""}`, `[1,2]`} {
		if _, err := ParseEnvelope([]byte(raw)); !errors.Is(err, ErrMalformedMessage) {
			t.Errorf("ParseEnvelope(%s) err = %v, want ErrMalformedMessage", raw, err)
		}
	}
}

func TestParseEnvelopeKeepsPayloadRaw(t *testing.T) {
	raw := `{"type":"offer","sessionId":"s1","participantId":"a","payload":{"sdp":"v=0"}}`
	env, err := ParseEnvelope([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if env.Type != TypeOffer || env.SessionID != "s1" || env.ParticipantID != "a" {
		t.Fatalf("env = %+v", env)
	}
	if string(env.Payload) != `{"sdp":"v=0"}` {
		t.Fatalf("payload = %s", env.Payload)
	}
}

func TestCreateRequest(t *testing.T) {
	env, _ := ParseEnvelope([]byte(`{"type":"session_create","payload":{"sessionId":"s1","kind":"video","capacity":3,"metadata":{"a":1}}}`))
	req, err := env.CreateRequest()
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if req.SessionID != "s1" || req.Kind != "video" || req.Capacity == nil || *req.Capacity != 3 {
		t.Fatalf("req = %+v", req)
	}

	env, _ = ParseEnvelope([]byte(`{"type":"session_create","sessionId":"s2"}`))
	req, err = env.CreateRequest()
	if err != nil {
		t.Fatalf("envelope id only: %v", err)
	}
	if req.SessionID != "s2" || req.Capacity != nil {
		t.Fatalf("req = %+v", req)
	}

	for _, raw := range []string{
		`{"type":"session_create"}`,
		`{"type":"session_create","sessionId":"s3","payload":{"capacity":0}}`,
		`{"type":"session_create","sessionId":"s3","payload":"oops"}`,
	} {
		env, _ := ParseEnvelope([]byte(raw))
		if _, err := env.CreateRequest(); !errors.Is(err, ErrMalformedMessage) {
			t.Errorf("%s: err = %v, want ErrMalformedMessage", raw, err)
		}
	}
}

func TestMemberRefResolution(t *testing.T) {
	fallback := MemberRef{SessionID: "bound", ParticipantID: "me"}

	env, _ := ParseEnvelope([]byte(`{"type":"session_join","sessionId":"s1","payload":{"participant":{"id":"p1"}}}`))
	ref, err := env.MemberRef(fallback)
	if err != nil {
		t.Fatalf("member ref: %v", err)
	}
	if ref.SessionID != "s1" || ref.ParticipantID != "p1" {
		t.Fatalf("ref = %+v", ref)
	}

	env, _ = ParseEnvelope([]byte(`{"type":"mute"}`))
	ref, err = env.MemberRef(fallback)
	if err != nil {
		t.Fatalf("fallback ref: %v", err)
	}
	if ref != fallback {
		t.Fatalf("ref = %+v, want %+v", ref, fallback)
	}

	if _, err := env.MemberRef(MemberRef{}); !errors.Is(err, ErrMalformedMessage) {
		t.Fatalf("missing ids err = %v", err)
	}

	long := strings.Repeat("x", MaxParticipantIDLen+1)
	env, _ = ParseEnvelope([]byte(`{"type":"session_join","sessionId":"s1","participantId":"` + long + `"}`))
	if _, err := env.MemberRef(MemberRef{}); !errors.Is(err, ErrMalformedMessage) {
		t.Fatalf("long id err = %v", err)
	}
}

func TestTransferRequest(t *testing.T) {
	env, _ := ParseEnvelope([]byte(`{"type":"transfer_request","sessionId":"s1","participantId":"a","payload":{"toParticipantId":"b","transferType":"blind"}}`))
	req, err := env.TransferRequest(MemberRef{})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if req.FromParticipantID != "a" || req.ToParticipantID != "b" || req.TransferType != "blind" {
		t.Fatalf("req = %+v", req)
	}

	env, _ = ParseEnvelope([]byte(`{"type":"transfer_request","sessionId":"s1","participantId":"a"}`))
	if _, err := env.TransferRequest(MemberRef{}); !errors.Is(err, ErrMalformedMessage) {
		t.Fatalf("missing target err = %v", err)
	}
}

func TestEncodeError(t *testing.T) {
	b := EncodeError(ErrSessionFull, t0)
	var got struct {
		Type      MessageType  `json:"type"`
		Timestamp int64        `json:"timestamp"`
		Payload   ErrorPayload `json:"payload"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != TypeError || got.Payload.Code != "full" || got.Timestamp != t0.UnixMilli() {
		t.Fatalf("got %+v", got)
	}
}
