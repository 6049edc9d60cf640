package domain

// ParticipantView is the read-only JSON shape of a participant.
type ParticipantView struct {
	ID              ParticipantID `json:"id"`
	JoinTime        int64         `json:"joinTime"`
	LastSeen        int64         `json:"lastSeen"`
	IsMuted         bool          `json:"isMuted"`
	IsVideoEnabled  bool          `json:"isVideoEnabled"`
	IsScreenSharing bool          `json:"isScreenSharing"`
}

// SessionView is the read-only JSON shape of a session.
type SessionView struct {
	ID           SessionID         `json:"id"`
	Kind         string            `json:"kind"`
	Participants []ParticipantView `json:"participants"`
	Capacity     int               `json:"capacity"`
	IsRecording  bool              `json:"isRecording"`
	CreatedAt    int64             `json:"createdAt"`
	Metadata     map[string]any    `json:"metadata,omitempty"`
}

func ViewOfParticipant(p Participant) ParticipantView {
	return ParticipantView{
		ID:              p.ID,
		JoinTime:        p.JoinTime.UnixMilli(),
		LastSeen:        p.LastSeen.UnixMilli(),
		IsMuted:         p.IsMuted,
		IsVideoEnabled:  p.IsVideoEnabled,
		IsScreenSharing: p.IsScreenSharing,
	}
}

func ViewOfSession(s Session) SessionView {
	ps := make([]ParticipantView, len(s.Participants))
	for i, p := range s.Participants {
		ps[i] = ViewOfParticipant(p)
	}
	return SessionView{
		ID:           s.ID,
		Kind:         s.Kind,
		Participants: ps,
		Capacity:     s.Capacity,
		IsRecording:  s.IsRecording,
		CreatedAt:    s.CreatedAt.UnixMilli(),
		Metadata:     s.Metadata,
	}
}

// TransferEvent describes a transfer request for notification sinks.
type TransferEvent struct {
	SessionID         SessionID
	FromParticipantID ParticipantID
	ToParticipantID   ParticipantID
	TransferType      string
}
