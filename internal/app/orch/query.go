package orch

import "github.com/dkeye/callrelay/internal/domain"

// Session returns a copy of one live session.
func (o *Orchestrator) Session(id domain.SessionID) (domain.Session, bool) {
	return o.Sessions.Get(id)
}

// Participant returns a copy of a participant and the session it belongs to.
func (o *Orchestrator) Participant(pid domain.ParticipantID) (domain.Participant, domain.SessionID, bool) {
	sid, ok := o.Sessions.SessionOf(pid)
	if !ok {
		return domain.Participant{}, "", false
	}
	var out domain.Participant
	err := o.Sessions.View(sid, func(s *domain.Session) error {
		p, err := s.Participant(pid)
		if err != nil {
			return err
		}
		out = *p
		return nil
	})
	return out, sid, err == nil
}

func (o *Orchestrator) ActiveSessions() []domain.Session {
	return o.Sessions.List()
}

func (o *Orchestrator) ConnectedParticipants() []domain.ParticipantID {
	return o.Registry.Participants()
}
