package domain

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

const DefaultCapacity = 10

type SessionID string

// Session is a call: ordered participants (join order) plus opaque metadata.
type Session struct {
	ID           SessionID
	Kind         string
	Participants []Participant
	Capacity     int
	IsRecording  bool
	CreatedAt    time.Time
	Metadata     map[string]any
}

// NewSession builds an empty session; capacity <= 0 falls back to DefaultCapacity.
func NewSession(id SessionID, kind string, capacity int, metadata map[string]any, now time.Time) *Session {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Session{
		ID:           id,
		Kind:         kind,
		Participants: make([]Participant, 0, min(capacity, DefaultCapacity)),
		Capacity:     capacity,
		CreatedAt:    now,
		Metadata:     metadata,
	}
}

func (s *Session) IndexOf(id ParticipantID) int {
	return slices.IndexFunc(s.Participants, func(p Participant) bool { return p.ID == id })
}

func (s *Session) Has(id ParticipantID) bool { return s.IndexOf(id) >= 0 }

func (s *Session) Empty() bool { return len(s.Participants) == 0 }

// Add appends p. Capacity is checked only here.
func (s *Session) Add(p Participant) error {
	if s.Has(p.ID) {
		return fmt.Errorf("%w: participant %s already in session %s", ErrAlreadyExists, p.ID, s.ID)
	}
	if len(s.Participants) >= s.Capacity {
		return fmt.Errorf("%w: session %s has %d/%d participants", ErrSessionFull, s.ID, len(s.Participants), s.Capacity)
	}
	s.Participants = append(s.Participants, p)
	return nil
}

// Remove deletes the participant and keeps the join order of the rest.
func (s *Session) Remove(id ParticipantID) (Participant, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return Participant{}, fmt.Errorf("%w: %s in session %s", ErrParticipantNotFound, id, s.ID)
	}
	p := s.Participants[i]
	s.Participants = slices.Delete(s.Participants, i, i+1)
	return p, nil
}

// Participant returns a pointer into the list for in-place mutation.
func (s *Session) Participant(id ParticipantID) (*Participant, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s in session %s", ErrParticipantNotFound, id, s.ID)
	}
	return &s.Participants[i], nil
}

func (s *Session) ParticipantIDs() []ParticipantID {
	out := make([]ParticipantID, len(s.Participants))
	for i, p := range s.Participants {
		out[i] = p.ID
	}
	return out
}

// Clone returns a copy that shares nothing mutable with s except metadata values.
func (s *Session) Clone() Session {
	c := *s
	c.Participants = slices.Clone(s.Participants)
	c.Metadata = maps.Clone(s.Metadata)
	return c
}
