package app

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dkeye/callrelay/internal/domain"
)

var now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func join(st *SessionStore, sid domain.SessionID, pid domain.ParticipantID) error {
	_, err := st.Update(sid, func(tx *Tx) error {
		if err := tx.Session.Add(domain.NewParticipant(pid, now)); err != nil {
			return err
		}
		tx.Bind(pid)
		return nil
	})
	return err
}

func leave(st *SessionStore, sid domain.SessionID, pid domain.ParticipantID) (bool, error) {
	return st.Update(sid, func(tx *Tx) error {
		if _, err := tx.Session.Remove(pid); err != nil {
			return err
		}
		tx.Unbind(pid)
		return nil
	})
}

func TestCreateRejectsDuplicate(t *testing.T) {
	st := NewSessionStore()
	if err := st.Create(domain.NewSession("s1", "", 2, nil, now)); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := st.Create(domain.NewSession("s1", "", 2, nil, now))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate create err = %v", err)
	}
}

func TestUpdateMissingSession(t *testing.T) {
	st := NewSessionStore()
	if _, err := st.Update("nope", func(*Tx) error { return nil }); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestLastLeaveRemovesSessionAndIndex(t *testing.T) {
	st := NewSessionStore()
	_ = st.Create(domain.NewSession("s1", "", 2, nil, now))
	if err := join(st, "s1", "a"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if sid, ok := st.SessionOf("a"); !ok || sid != "s1" {
		t.Fatalf("SessionOf(a) = %q, %v", sid, ok)
	}

	ended, err := leave(st, "s1", "a")
	if err != nil || !ended {
		t.Fatalf("leave ended=%v err=%v", ended, err)
	}
	if _, ok := st.Get("s1"); ok {
		t.Fatalf("empty session still present")
	}
	if _, ok := st.SessionOf("a"); ok {
		t.Fatalf("reverse index still set")
	}
	if st.Len() != 0 {
		t.Fatalf("len = %d", st.Len())
	}
	// The id is free again.
	if err := st.Create(domain.NewSession("s1", "", 2, nil, now)); err != nil {
		t.Fatalf("recreate: %v", err)
	}
}

func TestFailedUpdateLeavesSessionIntact(t *testing.T) {
	st := NewSessionStore()
	_ = st.Create(domain.NewSession("s1", "", 2, nil, now))
	_ = join(st, "s1", "a")
	if _, err := leave(st, "s1", "ghost"); !errors.Is(err, domain.ErrParticipantNotFound) {
		t.Fatalf("err = %v", err)
	}
	s, ok := st.Get("s1")
	if !ok || len(s.Participants) != 1 {
		t.Fatalf("session = %+v, %v", s, ok)
	}
}

func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	st := NewSessionStore()
	const capacity, joiners = 5, 50
	_ = st.Create(domain.NewSession("s1", "", capacity, nil, now))

	var ok, full atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := join(st, "s1", domain.ParticipantID(fmt.Sprintf("p%d", i)))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrSessionFull):
				full.Add(1)
			default:
				t.Errorf("join p%d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if ok.Load() != capacity || full.Load() != joiners-capacity {
		t.Fatalf("ok=%d full=%d", ok.Load(), full.Load())
	}
	s, _ := st.Get("s1")
	if len(s.Participants) != capacity {
		t.Fatalf("participants = %d", len(s.Participants))
	}
}

func TestGetReturnsCopy(t *testing.T) {
	st := NewSessionStore()
	_ = st.Create(domain.NewSession("s1", "", 2, nil, now))
	_ = join(st, "s1", "a")
	s, _ := st.Get("s1")
	s.Participants[0].IsMuted = true

	again, _ := st.Get("s1")
	if again.Participants[0].IsMuted {
		t.Fatalf("Get leaked internal state")
	}
	if got := len(st.List()); got != 1 {
		t.Fatalf("list = %d", got)
	}
}

func TestParsePolicy(t *testing.T) {
	for name, want := range map[string]BackpressureAction{"": DropMessage, "drop": DropMessage, "kick": KickMember} {
		p, err := ParsePolicy(name)
		if err != nil {
			t.Fatalf("ParsePolicy(%q): %v", name, err)
		}
		if got := p.OnBackPressure("s", "p"); got != want {
			t.Fatalf("ParsePolicy(%q) action = %v, want %v", name, got, want)
		}
	}
	if _, err := ParsePolicy("block"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
