package orch

import (
	"fmt"

	"github.com/dkeye/callrelay/internal/app"
	"github.com/dkeye/callrelay/internal/core"
	"github.com/dkeye/callrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// handleRelay forwards the inbound frame as is to everyone but the sender.
// Payloads are never inspected.
func (o *Orchestrator) handleRelay(peer core.Peer, env domain.Envelope, raw core.Frame) error {
	ref, err := env.SessionRef(bound(peer))
	if err != nil {
		return err
	}
	return o.Sessions.View(ref.SessionID, func(s *domain.Session) error {
		o.fanOut(s, raw, exclude(ref.ParticipantID))
		return nil
	})
}

func exclude(pid domain.ParticipantID) []domain.ParticipantID {
	if pid == "" {
		return nil
	}
	return []domain.ParticipantID{pid}
}

var toggles = map[domain.MessageType]struct {
	toggle domain.Toggle
	on     bool
}{
	domain.TypeMute:             {domain.ToggleMute, true},
	domain.TypeUnmute:           {domain.ToggleMute, false},
	domain.TypeVideoEnable:      {domain.ToggleVideo, true},
	domain.TypeVideoDisable:     {domain.ToggleVideo, false},
	domain.TypeScreenShareStart: {domain.ToggleScreenShare, true},
	domain.TypeScreenShareStop:  {domain.ToggleScreenShare, false},
}

func (o *Orchestrator) handleToggle(peer core.Peer, env domain.Envelope, raw core.Frame) error {
	tg, ok := toggles[env.Type]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownMessageType, env.Type)
	}
	ref, err := env.MemberRef(bound(peer))
	if err != nil {
		return err
	}
	_, err = o.Sessions.Update(ref.SessionID, func(tx *app.Tx) error {
		p, err := tx.Session.Participant(ref.ParticipantID)
		if err != nil {
			return err
		}
		p.Apply(tg.toggle, tg.on, o.now())
		o.fanOut(tx.Session, raw, exclude(ref.ParticipantID))
		return nil
	})
	if err == nil {
		log.Debug().Str("module", "orch").Str("session", string(ref.SessionID)).Str("participant", string(ref.ParticipantID)).
			Str("type", string(env.Type)).Msg("call control applied")
	}
	return err
}

func (o *Orchestrator) handleRecording(peer core.Peer, env domain.Envelope, raw core.Frame) error {
	ref, err := env.MemberRef(bound(peer))
	if err != nil {
		return err
	}
	_, err = o.Sessions.Update(ref.SessionID, func(tx *app.Tx) error {
		p, err := tx.Session.Participant(ref.ParticipantID)
		if err != nil {
			return err
		}
		p.LastSeen = o.now()
		tx.Session.IsRecording = env.Type == domain.TypeRecordingStart
		o.fanOut(tx.Session, raw, exclude(ref.ParticipantID))
		return nil
	})
	if err == nil {
		log.Info().Str("module", "orch").Str("session", string(ref.SessionID)).Str("type", string(env.Type)).Msg("recording state changed")
	}
	return err
}

type transferPayload struct {
	FromParticipantID domain.ParticipantID `json:"fromParticipantId"`
	TransferType      string               `json:"transferType"`
	SessionID         domain.SessionID     `json:"sessionId"`
	Metadata          map[string]any       `json:"metadata,omitempty"`
}

// handleTransfer sends a point-to-point request to the target. Delivery is
// at-most-once: a target without a live connection simply gets nothing.
func (o *Orchestrator) handleTransfer(peer core.Peer, env domain.Envelope) error {
	req, err := env.TransferRequest(bound(peer))
	if err != nil {
		return err
	}
	delivered := false
	err = o.Sessions.View(req.SessionID, func(s *domain.Session) error {
		if !s.Has(req.ToParticipantID) {
			return fmt.Errorf("%w: %s in session %s", domain.ErrTargetNotFound, req.ToParticipantID, s.ID)
		}
		conn, ok := o.Registry.Lookup(req.ToParticipantID)
		if !ok || !conn.IsOpen() {
			return nil
		}
		frame, err := domain.Encode(domain.TypeTransferRequest, s.ID, transferPayload{
			FromParticipantID: req.FromParticipantID,
			TransferType:      req.TransferType,
			SessionID:         s.ID,
			Metadata:          req.Metadata,
		}, o.now())
		if err != nil {
			return err
		}
		delivered = conn.TrySend(frame) == nil
		return nil
	})
	if err != nil {
		return err
	}
	o.notifier().TransferRequested(domain.TransferEvent{
		SessionID:         req.SessionID,
		FromParticipantID: req.FromParticipantID,
		ToParticipantID:   req.ToParticipantID,
		TransferType:      req.TransferType,
	})
	log.Info().Str("module", "orch").Str("session", string(req.SessionID)).Str("from", string(req.FromParticipantID)).
		Str("to", string(req.ToParticipantID)).Bool("delivered", delivered).Msg("transfer requested")
	return nil
}
