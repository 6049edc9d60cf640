// Package notify holds notification sinks that only observe the relay.
package notify

import (
	"github.com/dkeye/callrelay/internal/core"
	"github.com/dkeye/callrelay/internal/domain"
	"github.com/rs/zerolog"
)

// LogNotifier writes every notification as a structured event.
type LogNotifier struct {
	Logger zerolog.Logger
}

func NewLogNotifier(l zerolog.Logger) *LogNotifier {
	return &LogNotifier{Logger: l.With().Str("module", "notify").Logger()}
}

func (n *LogNotifier) SessionCreated(s domain.Session) {
	n.Logger.Info().Str("event", "session:created").Str("session", string(s.ID)).
		Str("kind", s.Kind).Int("capacity", s.Capacity).Send()
}

func (n *LogNotifier) ParticipantJoined(sid domain.SessionID, p domain.Participant) {
	n.Logger.Info().Str("event", "participant:joined").Str("session", string(sid)).Str("participant", string(p.ID)).Send()
}

func (n *LogNotifier) ParticipantLeft(sid domain.SessionID, p domain.Participant) {
	n.Logger.Info().Str("event", "participant:left").Str("session", string(sid)).Str("participant", string(p.ID)).
		Dur("in_call", p.LastSeen.Sub(p.JoinTime)).Send()
}

func (n *LogNotifier) SessionEnded(sid domain.SessionID) {
	n.Logger.Info().Str("event", "session:ended").Str("session", string(sid)).Send()
}

func (n *LogNotifier) TransferRequested(ev domain.TransferEvent) {
	n.Logger.Info().Str("event", "transfer:requested").Str("session", string(ev.SessionID)).
		Str("from", string(ev.FromParticipantID)).Str("to", string(ev.ToParticipantID)).
		Str("transfer_type", ev.TransferType).Send()
}

// Multi fans a notification out to several sinks in order.
type Multi []core.Notifier

func (m Multi) SessionCreated(s domain.Session) {
	for _, n := range m {
		n.SessionCreated(s)
	}
}

func (m Multi) ParticipantJoined(sid domain.SessionID, p domain.Participant) {
	for _, n := range m {
		n.ParticipantJoined(sid, p)
	}
}

func (m Multi) ParticipantLeft(sid domain.SessionID, p domain.Participant) {
	for _, n := range m {
		n.ParticipantLeft(sid, p)
	}
}

func (m Multi) SessionEnded(sid domain.SessionID) {
	for _, n := range m {
		n.SessionEnded(sid)
	}
}

func (m Multi) TransferRequested(ev domain.TransferEvent) {
	for _, n := range m {
		n.TransferRequested(ev)
	}
}
