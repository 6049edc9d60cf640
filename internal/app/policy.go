package app

import (
	"fmt"

	"github.com/dkeye/callrelay/internal/domain"
)

type BackpressureAction int

const (
	DropMessage BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a recipient whose send queue is full.
type Policy interface {
	OnBackPressure(sid domain.SessionID, pid domain.ParticipantID) BackpressureAction
}

// SimplePolicy applies the same action to every slow recipient.
type SimplePolicy struct {
	Action BackpressureAction
}

func (p SimplePolicy) OnBackPressure(domain.SessionID, domain.ParticipantID) BackpressureAction {
	return p.Action
}

// ParsePolicy maps the slow_consumer config value onto a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return SimplePolicy{Action: DropMessage}, nil
	case "kick":
		return SimplePolicy{Action: KickMember}, nil
	default:
		return nil, fmt.Errorf("unknown slow consumer policy %q", name)
	}
}
