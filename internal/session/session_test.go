package session

import (
	"path/filepath"
	"testing"
)

func TestSessionClearRunsHooks(t *testing.T) {
	s := New(nil)
	if err := s.Login("tok", "budi", "USER"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetUserID(7); err != nil {
		t.Fatal(err)
	}

	cleared := 0
	s.OnClear(func() { cleared++ })

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}

	if s.Authenticated() {
		t.Error("session still authenticated after Clear")
	}
	if _, ok := s.UserID(); ok {
		t.Error("user id survived Clear")
	}
	if cleared != 1 {
		t.Errorf("hook ran %d times, want 1", cleared)
	}
}

func TestStormStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := OpenStormStore(path)
	if err != nil {
		t.Fatal(err)
	}

	s, err := Restore(store)
	if err != nil {
		t.Fatal(err)
	}
	if s.Authenticated() {
		t.Fatal("fresh store produced an authenticated session")
	}

	if err := s.Login("tok", "budi", "ADMIN"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetUserID(12); err != nil {
		t.Fatal(err)
	}
	if err := store.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = OpenStormStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	restored, err := Restore(store)
	if err != nil {
		t.Fatal(err)
	}
	if got := restored.Snapshot(); got != (State{Token: "tok", Username: "budi", Role: "ADMIN", UserID: 12}) {
		t.Errorf("restored state = %+v", got)
	}

	if err := restored.Clear(); err != nil {
		t.Fatal(err)
	}
	st, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if st.Token != "" {
		t.Error("token persisted after Clear")
	}
}
