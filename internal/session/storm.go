package session

import (
	"errors"
	"fmt"

	"github.com/asdine/storm/v3"
	"go.etcd.io/bbolt"
)

const (
	bucketSession = "session"
	keyCurrent    = "current"
)

// StormStore keeps the session in an embedded bolt file, the local
// equivalent of browser storage.
type StormStore struct {
	db *storm.DB
}

func OpenStormStore(path string) (*StormStore, error) {
	db, err := storm.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	return &StormStore{db: db}, nil
}

func (s *StormStore) Load() (State, error) {
	var st State
	if err := s.db.Get(bucketSession, keyCurrent, &st); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("failed to load session: %w", err)
	}

	return st, nil
}

func (s *StormStore) Save(st State) error {
	if err := s.db.Set(bucketSession, keyCurrent, &st); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *StormStore) Delete() error {
	err := s.db.Delete(bucketSession, keyCurrent)
	if err != nil && !errors.Is(err, storm.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Ping reports whether the underlying bolt file is still open.
func (s *StormStore) Ping() error {
	if s.db.Bolt == nil {
		return errors.New("session store closed")
	}
	return s.db.Bolt.View(func(_ *bbolt.Tx) error { return nil })
}

func (s *StormStore) Close() error {
	return s.db.Close()
}
