package core

import "github.com/dkeye/callrelay/internal/domain"

//go:generate mockgen -destination=mocks/notifier.go -package=mocks . Notifier

// Notifier receives committed state changes. Calls are synchronous and happen
// after the session lock is released.
type Notifier interface {
	SessionCreated(s domain.Session)
	ParticipantJoined(sid domain.SessionID, p domain.Participant)
	ParticipantLeft(sid domain.SessionID, p domain.Participant)
	SessionEnded(sid domain.SessionID)
	TransferRequested(ev domain.TransferEvent)
}

type NopNotifier struct{}

func (NopNotifier) SessionCreated(domain.Session)                          {}
func (NopNotifier) ParticipantJoined(domain.SessionID, domain.Participant) {}
func (NopNotifier) ParticipantLeft(domain.SessionID, domain.Participant)   {}
func (NopNotifier) SessionEnded(domain.SessionID)                          {}
func (NopNotifier) TransferRequested(domain.TransferEvent)                 {}
