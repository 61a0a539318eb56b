package store

import "testing"

// NewTestStore creates a fresh store backed by a temporary directory.
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	return s
}
