// Package metrics exports relay activity as Prometheus collectors.
// It plugs in as both a core.Notifier and a core.Recorder.
package metrics

import (
	"github.com/dkeye/callrelay/internal/core"
	"github.com/dkeye/callrelay/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "callrelay"

type Metrics struct {
	SessionsCreated    prometheus.Counter
	SessionsEnded      prometheus.Counter
	ParticipantsJoined prometheus.Counter
	ParticipantsLeft   prometheus.Counter
	Transfers          *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge
	ActiveParticipants prometheus.Gauge
	Messages           *prometheus.CounterVec
	Deliveries         *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sessions_created_total", Help: "Sessions created.",
		}),
		SessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sessions_ended_total", Help: "Sessions removed after their last participant left.",
		}),
		ParticipantsJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "participants_joined_total", Help: "Successful session joins.",
		}),
		ParticipantsLeft: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "participants_left_total", Help: "Explicit and implicit session leaves.",
		}),
		Transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "transfers_requested_total", Help: "Transfer requests by type.",
		}, []string{"transfer_type"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "active_sessions", Help: "Sessions currently in memory.",
		}),
		ActiveParticipants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "active_participants", Help: "Participants currently in a session.",
		}),
		Messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "messages_total", Help: "Inbound messages by type and result code.",
		}, []string{"type", "code"}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "deliveries_total", Help: "Per-recipient fan-out results.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.SessionsCreated, m.SessionsEnded, m.ParticipantsJoined, m.ParticipantsLeft,
		m.Transfers, m.ActiveSessions, m.ActiveParticipants, m.Messages, m.Deliveries,
	)
	return m
}

var (
	_ core.Notifier = (*Metrics)(nil)
	_ core.Recorder = (*Metrics)(nil)
)

func (m *Metrics) SessionCreated(domain.Session) {
	m.SessionsCreated.Inc()
	m.ActiveSessions.Inc()
}

func (m *Metrics) ParticipantJoined(domain.SessionID, domain.Participant) {
	m.ParticipantsJoined.Inc()
	m.ActiveParticipants.Inc()
}

func (m *Metrics) ParticipantLeft(domain.SessionID, domain.Participant) {
	m.ParticipantsLeft.Inc()
	m.ActiveParticipants.Dec()
}

func (m *Metrics) SessionEnded(domain.SessionID) {
	m.SessionsEnded.Inc()
	m.ActiveSessions.Dec()
}

func (m *Metrics) TransferRequested(ev domain.TransferEvent) {
	m.Transfers.WithLabelValues(ev.TransferType).Inc()
}

func (m *Metrics) ObserveMessage(t domain.MessageType, err error) {
	code := "ok"
	if err != nil {
		code = domain.ErrorCode(err)
	}
	if _, known := knownTypes[t]; !known {
		t = "unknown"
	}
	m.Messages.WithLabelValues(string(t), code).Inc()
}

func (m *Metrics) ObserveDelivery(res core.PublishResult) {
	m.Deliveries.WithLabelValues("sent").Add(float64(res.SendTo))
	m.Deliveries.WithLabelValues("skipped").Add(float64(res.Skipped))
	m.Deliveries.WithLabelValues("dropped").Add(float64(len(res.Dropped)))
}

// knownTypes keeps the type label bounded.
var knownTypes = map[domain.MessageType]struct{}{
	domain.TypeSessionCreate: {}, domain.TypeSessionJoin: {}, domain.TypeSessionLeave: {},
	domain.TypeOffer: {}, domain.TypeAnswer: {}, domain.TypeICECandidate: {},
	domain.TypeTrackAdd: {}, domain.TypeTrackRemove: {}, domain.TypeReaction: {},
	domain.TypeMute: {}, domain.TypeUnmute: {}, domain.TypeVideoEnable: {}, domain.TypeVideoDisable: {},
	domain.TypeScreenShareStart: {}, domain.TypeScreenShareStop: {},
	domain.TypeRecordingStart: {}, domain.TypeRecordingStop: {},
	domain.TypeTransferRequest: {}, domain.TypePing: {},
}
