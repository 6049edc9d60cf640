// Package domain contains call entities and their invariants, no transport here.
package domain

import "time"

const MaxParticipantIDLen = 128

type ParticipantID string

// Participant is one member of a call session.
type Participant struct {
	ID              ParticipantID
	JoinTime        time.Time
	LastSeen        time.Time
	IsMuted         bool
	IsVideoEnabled  bool
	IsScreenSharing bool
}

// NewParticipant avoids raw literals in handlers and keeps construction obvious.
func NewParticipant(id ParticipantID, now time.Time) Participant {
	return Participant{ID: id, JoinTime: now, LastSeen: now}
}

// Toggle is a boolean call-control flag on a participant.
type Toggle int

const (
	ToggleMute Toggle = iota
	ToggleVideo
	ToggleScreenShare
)

// Apply sets the flag and marks the participant as seen.
func (p *Participant) Apply(t Toggle, on bool, now time.Time) {
	switch t {
	case ToggleMute:
		p.IsMuted = on
	case ToggleVideo:
		p.IsVideoEnabled = on
	case ToggleScreenShare:
		p.IsScreenSharing = on
	}
	p.LastSeen = now
}
