package orch

import (
	"errors"
	"slices"

	"github.com/dkeye/callrelay/internal/app"
	"github.com/dkeye/callrelay/internal/core"
	"github.com/dkeye/callrelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Broadcast sends frame to every participant of sid not in exclude.
// A missing session is a no-op; delivery is best-effort per recipient.
func (o *Orchestrator) Broadcast(sid domain.SessionID, frame core.Frame, exclude ...domain.ParticipantID) core.PublishResult {
	var res core.PublishResult
	err := o.Sessions.View(sid, func(s *domain.Session) error {
		res = o.fanOut(s, frame, exclude)
		return nil
	})
	if err != nil {
		log.Debug().Str("module", "orch.broadcast").Str("session", string(sid)).Msg("broadcast to missing session")
	}
	return res
}

// fanOut must be called with the session locked so the participant list
// cannot change mid-iteration. TrySend never blocks.
func (o *Orchestrator) fanOut(s *domain.Session, frame core.Frame, exclude []domain.ParticipantID) core.PublishResult {
	res := core.PublishResult{}
	for _, p := range s.Participants {
		if slices.Contains(exclude, p.ID) {
			continue
		}
		conn, ok := o.Registry.Lookup(p.ID)
		if !ok || !conn.IsOpen() {
			res.Skipped++
			continue
		}
		if err := conn.TrySend(frame); err != nil {
			res.Dropped = append(res.Dropped, p.ID)
			if errors.Is(err, core.ErrBackpressure) {
				o.onBackPressure(s.ID, p.ID, conn)
			}
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "orch.broadcast").Str("session", string(s.ID)).
		Int("sent_to", res.SendTo).Int("skipped", res.Skipped).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	if o.Metrics != nil {
		o.Metrics.ObserveDelivery(res)
	}
	return res
}

func (o *Orchestrator) onBackPressure(sid domain.SessionID, pid domain.ParticipantID, conn core.SignalConnection) {
	if o.Policy == nil {
		return
	}
	switch o.Policy.OnBackPressure(sid, pid) {
	case app.KickMember:
		log.Warn().Str("module", "orch.broadcast").Str("session", string(sid)).Str("participant", string(pid)).Msg("kicking slow consumer")
		// The connection's own close path performs the leave.
		conn.Close()
	case app.DropMessage:
	}
}
