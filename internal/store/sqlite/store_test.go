package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jaminalder/codex-battleship/internal/database"
	"github.com/jaminalder/codex-battleship/internal/identity"
	"github.com/jaminalder/codex-battleship/internal/store/storetest"
	"github.com/rs/zerolog"
)

func TestSQLiteStore(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "boards.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	storetest.Run(t, New(db, zerolog.Nop()))
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.db")
	db, err := database.Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	storetest.Run(t, New(db, zerolog.Nop()))
	_ = db.Close()

	db, err = database.Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	s := New(db, zerolog.Nop())
	keys, err := s.For(identity.Key{1}).Keys(context.Background())
	if err != nil || len(keys) != 2 {
		t.Fatalf("expected boards to persist, got %v, %v", keys, err)
	}
}
