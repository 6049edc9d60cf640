package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

type MessageType string

const (
	TypeSessionCreate MessageType = "session_create"
	TypeSessionJoin   MessageType = "session_join"
	TypeSessionLeave  MessageType = "session_leave"
	TypeSessionUpdate MessageType = "session_update"

	TypeOffer        MessageType = "offer"
	TypeAnswer       MessageType = "answer"
	TypeICECandidate MessageType = "ice_candidate"
	TypeTrackAdd     MessageType = "track_add"
	TypeTrackRemove  MessageType = "track_remove"
	TypeReaction     MessageType = "reaction"

	TypeMute             MessageType = "mute"
	TypeUnmute           MessageType = "unmute"
	TypeVideoEnable      MessageType = "video_enable"
	TypeVideoDisable     MessageType = "video_disable"
	TypeScreenShareStart MessageType = "screen_share_start"
	TypeScreenShareStop  MessageType = "screen_share_stop"
	TypeRecordingStart   MessageType = "recording_start"
	TypeRecordingStop    MessageType = "recording_stop"

	TypeTransferRequest MessageType = "transfer_request"

	TypePing    MessageType = "ping"
	TypePong    MessageType = "pong"
	TypeSuccess MessageType = "success"
	TypeError   MessageType = "error"
)

// Envelope is the wire frame exchanged with clients.
type Envelope struct {
	Type          MessageType     `json:"type"`
	SessionID     SessionID       `json:"sessionId,omitempty"`
	ParticipantID ParticipantID   `json:"participantId,omitempty"`
	Timestamp     int64           `json:"timestamp,omitempty"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseEnvelope decodes one inbound frame. Only the shape is checked here;
// unknown types are rejected by the dispatcher.
func ParseEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("%w: missing type", ErrMalformedMessage)
	}
	return env, nil
}

func (e Envelope) decode(v any) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("%w: bad %s payload: %v", ErrMalformedMessage, e.Type, err)
	}
	return nil
}

func check(t MessageType, v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: invalid %s: %v", ErrMalformedMessage, t, err)
	}
	return nil
}

type CreateRequest struct {
	SessionID SessionID      `json:"sessionId" validate:"required,max=128"`
	Kind      string         `json:"kind" validate:"max=64"`
	Capacity  *int           `json:"capacity" validate:"omitempty,gte=1"`
	Metadata  map[string]any `json:"metadata"`
}

// CreateRequest reads the session id from the envelope or the payload.
func (e Envelope) CreateRequest() (CreateRequest, error) {
	var r CreateRequest
	if err := e.decode(&r); err != nil {
		return r, err
	}
	if e.SessionID != "" {
		r.SessionID = e.SessionID
	}
	return r, check(e.Type, r)
}

// MemberRef addresses one participant inside one session.
type MemberRef struct {
	SessionID     SessionID     `validate:"required,max=128"`
	ParticipantID ParticipantID `validate:"required,max=128"`
}

type memberPayload struct {
	SessionID     SessionID     `json:"sessionId"`
	ParticipantID ParticipantID `json:"participantId"`
	Participant   struct {
		ID ParticipantID `json:"id"`
	} `json:"participant"`
}

// MemberRef resolves ids from the envelope first, then from the payload
// (`participantId` or `participant.id`), then from fallback.
func (e Envelope) MemberRef(fallback MemberRef) (MemberRef, error) {
	var p memberPayload
	if err := e.decode(&p); err != nil {
		return MemberRef{}, err
	}
	ref := MemberRef{
		SessionID:     firstOf(e.SessionID, p.SessionID, fallback.SessionID),
		ParticipantID: firstOf(e.ParticipantID, p.ParticipantID, p.Participant.ID, fallback.ParticipantID),
	}
	return ref, check(e.Type, ref)
}

// SessionRef is MemberRef for relay messages where the sender id is optional.
func (e Envelope) SessionRef(fallback MemberRef) (MemberRef, error) {
	ref := MemberRef{
		SessionID:     firstOf(e.SessionID, fallback.SessionID),
		ParticipantID: firstOf(e.ParticipantID, fallback.ParticipantID),
	}
	if ref.SessionID == "" {
		return ref, fmt.Errorf("%w: %s without sessionId", ErrMalformedMessage, e.Type)
	}
	return ref, nil
}

type TransferRequest struct {
	SessionID         SessionID      `json:"sessionId" validate:"required,max=128"`
	FromParticipantID ParticipantID  `json:"fromParticipantId" validate:"required,max=128"`
	ToParticipantID   ParticipantID  `json:"toParticipantId" validate:"required,max=128"`
	TransferType      string         `json:"transferType" validate:"max=64"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

func (e Envelope) TransferRequest(fallback MemberRef) (TransferRequest, error) {
	var r TransferRequest
	if err := e.decode(&r); err != nil {
		return r, err
	}
	r.SessionID = firstOf(e.SessionID, r.SessionID, fallback.SessionID)
	r.FromParticipantID = firstOf(r.FromParticipantID, e.ParticipantID, fallback.ParticipantID)
	return r, check(e.Type, r)
}

func firstOf[T ~string](vals ...T) T {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Encode builds an outbound frame stamped with now.
func Encode(t MessageType, sid SessionID, payload any, now time.Time) ([]byte, error) {
	env := struct {
		Type      MessageType `json:"type"`
		SessionID SessionID   `json:"sessionId,omitempty"`
		Timestamp int64       `json:"timestamp"`
		Payload   any         `json:"payload,omitempty"`
	}{t, sid, now.UnixMilli(), payload}
	return json.Marshal(env)
}

type ErrorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func EncodeError(err error, now time.Time) []byte {
	b, _ := Encode(TypeError, "", ErrorPayload{Error: err.Error(), Code: ErrorCode(err)}, now)
	return b
}
