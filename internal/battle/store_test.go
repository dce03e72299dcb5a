package battle

import (
	"sync"
	"testing"
)

func TestStoreCreateGet(t *testing.T) {
	store := NewStore()

	session := store.Create(100, "Creator", testQuestions(5))
	if session.ID == "" {
		t.Fatal("Create() returned session with empty id")
	}
	if session.Status != StatusWaiting {
		t.Errorf("status = %q, want %q", session.Status, StatusWaiting)
	}

	got, ok := store.Get(session.ID)
	if !ok || got != session {
		t.Errorf("Get(%q) = %v, %v; want created session", session.ID, got, ok)
	}

	if _, ok := store.Get("no-such-id"); ok {
		t.Error("Get() on unknown id reported ok")
	}

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore()
	session := store.Create(100, "Creator", testQuestions(5))

	store.Delete(session.ID)
	if _, ok := store.Get(session.ID); ok {
		t.Error("session still present after Delete()")
	}

	// Deleting again is a no-op.
	store.Delete(session.ID)
	if store.Len() != 0 {
		t.Errorf("Len() = %d after double delete, want 0", store.Len())
	}
}

func TestStoreMutateNotFound(t *testing.T) {
	store := NewStore()
	err := store.Mutate("gone", func(s *Session) error { return nil })
	if err != ErrNotFound {
		t.Errorf("Mutate() on unknown id error = %v, want ErrNotFound", err)
	}
}

func TestStoreMutateSerializes(t *testing.T) {
	store := NewStore()
	session := store.Create(100, "Creator", testQuestions(5))
	if err := store.Mutate(session.ID, func(s *Session) error {
		return s.BindOpponent(200)
	}); err != nil {
		t.Fatalf("BindOpponent via Mutate error = %v", err)
	}

	// Hammer the same session from many goroutines. The per-session
	// lock must keep every increment intact.
	const workers = 8
	const rounds = 100

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				store.Mutate(session.ID, func(s *Session) error {
					s.Scores[100]++
					return nil
				})
			}
		}()
	}
	wg.Wait()

	var got int
	store.Mutate(session.ID, func(s *Session) error {
		got = s.Scores[100]
		return nil
	})
	if got != workers*rounds {
		t.Errorf("score = %d after concurrent mutation, want %d", got, workers*rounds)
	}
}

func TestStoreTeardownTombstone(t *testing.T) {
	store := NewStore()
	session := store.Create(100, "Creator", testQuestions(5))
	id := session.ID

	// Teardown step one, under the session lock: confirm the session is
	// still waiting and flip it to finished.
	err := store.Mutate(id, func(s *Session) error {
		if s.Status != StatusWaiting {
			return ErrAlreadyActive
		}
		s.Status = StatusFinished
		return nil
	})
	if err != nil {
		t.Fatalf("teardown Mutate() error = %v", err)
	}

	// An accept landing between the status flip and the map delete must
	// not bind into the doomed session.
	err = store.Mutate(id, func(s *Session) error {
		return s.BindOpponent(200)
	})
	if err != ErrNotFound {
		t.Errorf("BindOpponent via Mutate during teardown error = %v, want ErrNotFound", err)
	}

	store.Delete(id)
	if err := store.Mutate(id, func(s *Session) error { return nil }); err != ErrNotFound {
		t.Errorf("Mutate() after teardown error = %v, want ErrNotFound", err)
	}
}

func TestStoreCreateCancelRoundtrip(t *testing.T) {
	store := NewStore()

	session := store.Create(100, "Creator", testQuestions(5))
	id := session.ID

	// Cancel path: still waiting, creator withdraws.
	err := store.Mutate(id, func(s *Session) error {
		if s.Status != StatusWaiting {
			t.Errorf("status = %q, want %q", s.Status, StatusWaiting)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}
	store.Delete(id)

	// A late answer for the canceled battle resolves to not-found, which
	// callers surface as a notice rather than an error.
	err = store.Mutate(id, func(s *Session) error {
		t.Error("mutate fn ran on deleted session")
		return nil
	})
	if err != ErrNotFound {
		t.Errorf("Mutate() after delete error = %v, want ErrNotFound", err)
	}
}
