package orch

import (
	"github.com/dkeye/callrelay/internal/app"
	"github.com/dkeye/callrelay/internal/core"
	"github.com/dkeye/callrelay/internal/domain"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

type joinAck struct {
	Ack
	ICEServers []webrtc.ICEServer `json:"iceServers,omitempty"`
}

func (o *Orchestrator) handleCreate(peer core.Peer, env domain.Envelope) error {
	req, err := env.CreateRequest()
	if err != nil {
		return err
	}
	capacity := o.DefaultCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	s := domain.NewSession(req.SessionID, req.Kind, capacity, req.Metadata, o.now())
	snap := s.Clone()
	if err := o.Sessions.Create(s); err != nil {
		return err
	}
	o.notifier().SessionCreated(snap)

	view := domain.ViewOfSession(snap)
	o.ack(peer, Ack{Action: env.Type, SessionID: snap.ID, Session: &view})
	return nil
}

func (o *Orchestrator) handleJoin(peer core.Peer, env domain.Envelope) Outcome {
	ref, err := env.MemberRef(bound(peer))
	if err != nil {
		return Outcome{Err: err}
	}
	now := o.now()
	var (
		joined   domain.Participant
		view     domain.SessionView
		rejoined bool
	)
	_, err = o.Sessions.Update(ref.SessionID, func(tx *app.Tx) error {
		s := tx.Session
		if p, err := s.Participant(ref.ParticipantID); err == nil {
			// Same id joining again: a reconnect, the record is kept.
			p.LastSeen = now
			joined, rejoined = *p, true
		} else {
			p := domain.NewParticipant(ref.ParticipantID, now)
			if err := s.Add(p); err != nil {
				return err
			}
			joined = p
		}
		o.Registry.Register(ref.ParticipantID, peer)
		tx.Bind(ref.ParticipantID)

		view = domain.ViewOfSession(*s)
		if frame, err := domain.Encode(domain.TypeSessionUpdate, s.ID, view, now); err == nil {
			o.fanOut(s, frame, nil)
		} else {
			log.Error().Err(err).Str("module", "orch").Msg("encode session update")
		}
		return nil
	})
	if err != nil {
		return Outcome{Err: err}
	}
	if !rejoined {
		o.notifier().ParticipantJoined(ref.SessionID, joined)
	}
	log.Info().Str("module", "orch").Str("session", string(ref.SessionID)).Str("participant", string(ref.ParticipantID)).
		Bool("rejoined", rejoined).Int("participants", len(view.Participants)).Msg("participant joined")

	o.ack(peer, joinAck{
		Ack:        Ack{Action: env.Type, SessionID: ref.SessionID, ParticipantID: ref.ParticipantID, Session: &view},
		ICEServers: o.ICEServers,
	})
	return Outcome{Joined: &ref}
}

func (o *Orchestrator) handleLeave(peer core.Peer, env domain.Envelope) Outcome {
	ref, err := env.MemberRef(bound(peer))
	if err != nil {
		return Outcome{Err: err}
	}
	if err := o.Leave(ref, true); err != nil {
		return Outcome{Err: err}
	}
	o.ack(peer, Ack{Action: env.Type, SessionID: ref.SessionID, ParticipantID: ref.ParticipantID})
	return Outcome{Left: &ref}
}

// Leave removes a participant from its session. Explicit leaves and
// disconnect cleanup both come through here; hasLiveConnection only affects
// logging since replies are written by the caller.
func (o *Orchestrator) Leave(ref domain.MemberRef, hasLiveConnection bool) error {
	var left domain.Participant
	ended, err := o.Sessions.Update(ref.SessionID, func(tx *app.Tx) error {
		p, err := tx.Session.Remove(ref.ParticipantID)
		if err != nil {
			return err
		}
		left = p
		o.Registry.Unregister(ref.ParticipantID)
		tx.Unbind(ref.ParticipantID)

		if tx.Session.Empty() {
			return nil
		}
		view := domain.ViewOfSession(*tx.Session)
		if frame, err := domain.Encode(domain.TypeSessionUpdate, tx.Session.ID, view, o.now()); err == nil {
			o.fanOut(tx.Session, frame, nil)
		} else {
			log.Error().Err(err).Str("module", "orch").Msg("encode session update")
		}
		return nil
	})
	if err != nil {
		return err
	}
	o.notifier().ParticipantLeft(ref.SessionID, left)
	if ended {
		o.notifier().SessionEnded(ref.SessionID)
	}
	log.Info().Str("module", "orch").Str("session", string(ref.SessionID)).Str("participant", string(ref.ParticipantID)).
		Bool("graceful", hasLiveConnection).Bool("session_ended", ended).Msg("participant left")
	return nil
}

// OnDisconnect runs the implicit leave for the identity bound to peer.
// A peer superseded by a newer connection for the same participant is ignored.
func (o *Orchestrator) OnDisconnect(peer core.Peer) {
	ref, ok := peer.Bound()
	if !ok {
		return
	}
	if conn, ok := o.Registry.Lookup(ref.ParticipantID); ok && conn != peer {
		log.Info().Str("module", "orch").Str("conn", peer.ID()).Str("participant", string(ref.ParticipantID)).
			Msg("disconnect of superseded connection, keeping participant")
		return
	}
	if err := o.Leave(ref, false); err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", peer.ID()).Msg("implicit leave skipped")
	}
}
