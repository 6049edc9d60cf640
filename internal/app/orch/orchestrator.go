package orch

import (
	"errors"
	"fmt"
	"time"

	"github.com/dkeye/callrelay/internal/app"
	"github.com/dkeye/callrelay/internal/core"
	"github.com/dkeye/callrelay/internal/domain"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// Orchestrator decodes inbound frames and runs them against the session store.
// Each message is handled on its own; no negotiation state is kept here.
type Orchestrator struct {
	Registry *app.Registry
	Sessions *app.SessionStore
	Policy   app.Policy
	Notifier core.Notifier
	Metrics  core.Recorder

	// ICEServers are handed to participants on join.
	ICEServers      []webrtc.ICEServer
	DefaultCapacity int

	Now func() time.Time
}

// Outcome tells the connection owner how the message changed its identity.
type Outcome struct {
	Type   domain.MessageType
	Err    error
	Joined *domain.MemberRef
	Left   *domain.MemberRef
}

// Handle processes one inbound frame from peer. Failures are answered with an
// error envelope on peer and never close it.
func (o *Orchestrator) Handle(peer core.Peer, data core.Frame) Outcome {
	env, err := domain.ParseEnvelope(data)
	if err != nil {
		o.fail(peer, "", err)
		return Outcome{Err: err}
	}
	out := o.dispatch(peer, env, data)
	out.Type = env.Type
	if out.Err != nil {
		o.fail(peer, env.Type, out.Err)
	}
	if o.Metrics != nil {
		o.Metrics.ObserveMessage(env.Type, out.Err)
	}
	return out
}

func (o *Orchestrator) dispatch(peer core.Peer, env domain.Envelope, raw core.Frame) Outcome {
	switch env.Type {
	case domain.TypeSessionCreate:
		return Outcome{Err: o.handleCreate(peer, env)}
	case domain.TypeSessionJoin:
		return o.handleJoin(peer, env)
	case domain.TypeSessionLeave:
		return o.handleLeave(peer, env)
	case domain.TypeOffer, domain.TypeAnswer, domain.TypeICECandidate,
		domain.TypeTrackAdd, domain.TypeTrackRemove, domain.TypeReaction:
		return Outcome{Err: o.handleRelay(peer, env, raw)}
	case domain.TypeMute, domain.TypeUnmute,
		domain.TypeVideoEnable, domain.TypeVideoDisable,
		domain.TypeScreenShareStart, domain.TypeScreenShareStop:
		return Outcome{Err: o.handleToggle(peer, env, raw)}
	case domain.TypeRecordingStart, domain.TypeRecordingStop:
		return Outcome{Err: o.handleRecording(peer, env, raw)}
	case domain.TypeTransferRequest:
		return Outcome{Err: o.handleTransfer(peer, env)}
	case domain.TypePing:
		o.reply(peer, domain.TypePong, "", nil)
		return Outcome{}
	default:
		return Outcome{Err: fmt.Errorf("%w: %q", domain.ErrUnknownMessageType, env.Type)}
	}
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o *Orchestrator) notifier() core.Notifier {
	if o.Notifier == nil {
		return core.NopNotifier{}
	}
	return o.Notifier
}

func bound(peer core.Peer) domain.MemberRef {
	if peer == nil {
		return domain.MemberRef{}
	}
	ref, _ := peer.Bound()
	return ref
}

func (o *Orchestrator) reply(peer core.Peer, t domain.MessageType, sid domain.SessionID, payload any) {
	if peer == nil {
		return
	}
	b, err := domain.Encode(t, sid, payload, o.now())
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("type", string(t)).Msg("encode reply")
		return
	}
	if err := peer.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("conn", peer.ID()).Msg("reply dropped")
	}
}

// Ack is the success payload of session lifecycle requests.
type Ack struct {
	Action        domain.MessageType  `json:"action"`
	SessionID     domain.SessionID    `json:"sessionId,omitempty"`
	ParticipantID domain.ParticipantID `json:"participantId,omitempty"`
	Session       *domain.SessionView `json:"session,omitempty"`
}

func (o *Orchestrator) ack(peer core.Peer, payload any) {
	o.reply(peer, domain.TypeSuccess, "", payload)
}

func (o *Orchestrator) fail(peer core.Peer, t domain.MessageType, err error) {
	ev := log.Warn()
	if errors.Is(err, domain.ErrMalformedMessage) || errors.Is(err, domain.ErrUnknownMessageType) {
		ev = log.Info()
	}
	if peer != nil {
		ev = ev.Str("conn", peer.ID())
	}
	ev.Err(err).Str("module", "orch").Str("type", string(t)).Msg("request failed")
	if peer == nil {
		return
	}
	if err := peer.TrySend(domain.EncodeError(err, o.now())); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("conn", peer.ID()).Msg("error reply dropped")
	}
}
