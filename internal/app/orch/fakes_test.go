package orch

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/callrelay/internal/app"
	"github.com/dkeye/callrelay/internal/core"
	"github.com/dkeye/callrelay/internal/domain"
)

var testNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// fakePeer records every frame sent to it. The identity binding mirrors what
// the WebSocket adapter does with Outcome.
type fakePeer struct {
	id string

	mu     sync.Mutex
	frames []core.Frame
	closed bool
	full   bool
	ref    domain.MemberRef
	hasRef bool
}

func newPeer(id string) *fakePeer { return &fakePeer{id: id} }

func (p *fakePeer) ID() string { return p.id }

func (p *fakePeer) TrySend(f core.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.full {
		return core.ErrBackpressure
	}
	p.frames = append(p.frames, f)
	return nil
}

func (p *fakePeer) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed
}

func (p *fakePeer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func (p *fakePeer) Bound() (domain.MemberRef, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ref, p.hasRef
}

func (p *fakePeer) apply(out Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if out.Joined != nil {
		p.ref, p.hasRef = *out.Joined, true
	}
	if out.Left != nil && p.ref == *out.Left {
		p.ref, p.hasRef = domain.MemberRef{}, false
	}
}

// take returns and clears the frames received so far.
func (p *fakePeer) take() []core.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.frames
	p.frames = nil
	return out
}

type wire struct {
	Type      domain.MessageType `json:"type"`
	SessionID domain.SessionID   `json:"sessionId"`
	Timestamp int64              `json:"timestamp"`
	Payload   json.RawMessage    `json:"payload"`
}

func decode(t *testing.T, f core.Frame) wire {
	t.Helper()
	var w wire
	if err := json.Unmarshal(f, &w); err != nil {
		t.Fatalf("decode %s: %v", f, err)
	}
	return w
}

func types(t *testing.T, frames []core.Frame) []domain.MessageType {
	t.Helper()
	out := make([]domain.MessageType, len(frames))
	for i, f := range frames {
		out[i] = decode(t, f).Type
	}
	return out
}

func newOrchestrator(n core.Notifier) *Orchestrator {
	return &Orchestrator{
		Registry:        app.NewRegistry(),
		Sessions:        app.NewSessionStore(),
		Policy:          app.SimplePolicy{Action: app.DropMessage},
		Notifier:        n,
		DefaultCapacity: domain.DefaultCapacity,
		Now:             func() time.Time { return testNow },
	}
}

func send(t *testing.T, o *Orchestrator, p *fakePeer, raw string) Outcome {
	t.Helper()
	out := o.Handle(p, core.Frame(raw))
	p.apply(out)
	return out
}

func mustOK(t *testing.T, o *Orchestrator, p *fakePeer, raw string) {
	t.Helper()
	if out := send(t, o, p, raw); out.Err != nil {
		t.Fatalf("%s: %v", raw, out.Err)
	}
}

// joined creates sid with the given capacity and joins every peer in order,
// then drops all frames produced so far.
func joined(t *testing.T, o *Orchestrator, sid string, capacity int, peers ...*fakePeer) {
	t.Helper()
	creator := newPeer("creator")
	mustOK(t, o, creator, `{"type":"session_create","sessionId":"`+sid+`","payload":{"capacity":`+itoa(capacity)+`}}`)
	for _, p := range peers {
		mustOK(t, o, p, `{"type":"session_join","sessionId":"`+sid+`","participantId":"`+p.id+`"}`)
	}
	for _, p := range peers {
		p.take()
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
