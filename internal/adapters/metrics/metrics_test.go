package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/dkeye/callrelay/internal/core"
	"github.com/dkeye/callrelay/internal/domain"
)

func TestLifecycleGauges(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SessionCreated(domain.Session{ID: "s1"})
	m.ParticipantJoined("s1", domain.Participant{ID: "a"})
	m.ParticipantJoined("s1", domain.Participant{ID: "b"})
	m.ParticipantLeft("s1", domain.Participant{ID: "a"})

	if got := testutil.ToFloat64(m.ActiveSessions); got != 1 {
		t.Fatalf("active sessions = %v", got)
	}
	if got := testutil.ToFloat64(m.ActiveParticipants); got != 1 {
		t.Fatalf("active participants = %v", got)
	}

	m.ParticipantLeft("s1", domain.Participant{ID: "b"})
	m.SessionEnded("s1")
	if got := testutil.ToFloat64(m.ActiveSessions); got != 0 {
		t.Fatalf("active sessions after end = %v", got)
	}
	if got := testutil.ToFloat64(m.SessionsEnded); got != 1 {
		t.Fatalf("ended = %v", got)
	}
}

func TestMessageLabels(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveMessage(domain.TypeOffer, nil)
	m.ObserveMessage(domain.TypeSessionJoin, fmt.Errorf("%w: s1", domain.ErrSessionFull))
	m.ObserveMessage("made_up", domain.ErrUnknownMessageType)
	m.ObserveMessage("other_made_up", errors.New("boom"))

	if got := testutil.ToFloat64(m.Messages.WithLabelValues("offer", "ok")); got != 1 {
		t.Fatalf("offer ok = %v", got)
	}
	if got := testutil.ToFloat64(m.Messages.WithLabelValues("session_join", "full")); got != 1 {
		t.Fatalf("join full = %v", got)
	}
	if got := testutil.ToFloat64(m.Messages.WithLabelValues("unknown", "unknown_message_type")); got != 1 {
		t.Fatalf("unknown = %v", got)
	}
	if got := testutil.CollectAndCount(m.Messages); got != 4 {
		t.Fatalf("series = %d", got)
	}
}

func TestDeliveriesAndTransfers(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveDelivery(core.PublishResult{SendTo: 3, Skipped: 1, Dropped: []domain.ParticipantID{"x"}})
	m.TransferRequested(domain.TransferEvent{TransferType: "blind"})

	if got := testutil.ToFloat64(m.Deliveries.WithLabelValues("sent")); got != 3 {
		t.Fatalf("sent = %v", got)
	}
	if got := testutil.ToFloat64(m.Deliveries.WithLabelValues("dropped")); got != 1 {
		t.Fatalf("dropped = %v", got)
	}
	if got := testutil.ToFloat64(m.Transfers.WithLabelValues("blind")); got != 1 {
		t.Fatalf("transfers = %v", got)
	}
}
