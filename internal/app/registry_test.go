package app

import (
	"testing"
)

func TestRegistryLastWriterWins(t *testing.T) {
	r := NewRegistry()
	first, second := &fakeConn{}, &fakeConn{}
	r.Register("a", first)
	r.Register("a", second)

	got, ok := r.Lookup("a")
	if !ok || got != second {
		t.Fatalf("lookup = %v, %v; want second connection", got, ok)
	}
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register("a", &fakeConn{})
	r.Unregister("a")
	r.Unregister("a")
	r.Unregister("never")
	if _, ok := r.Lookup("a"); ok {
		t.Fatalf("a still registered")
	}
	if got := r.Participants(); len(got) != 0 {
		t.Fatalf("participants = %v", got)
	}
}
