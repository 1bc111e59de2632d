// Package storetest checks a store.PrivateStore implementation.
package storetest

import (
	"context"
	"testing"

	"github.com/jaminalder/codex-battleship/internal/domain"
	"github.com/jaminalder/codex-battleship/internal/identity"
	"github.com/jaminalder/codex-battleship/internal/store"
)

// Run exercises namespacing, round trips and key listing against s, which
// must start empty.
func Run(t *testing.T, s store.PrivateStore) {
	t.Helper()
	ctx := context.Background()
	alice, bob := identity.Key{1}, identity.Key{2}

	a := s.For(alice)
	if a.Owner() != alice {
		t.Fatalf("namespace bound to the wrong owner")
	}
	if _, ok, err := a.Get(ctx, "m1"); err != nil || ok {
		t.Fatalf("expected missing board, got ok=%v err=%v", ok, err)
	}
	if keys, err := a.Keys(ctx); err != nil || len(keys) != 0 {
		t.Fatalf("expected no keys, got %v, %v", keys, err)
	}

	board := domain.NewPlayerBoard()
	if err := board.PlaceShips([]string{
		"0,0;1,0;2,0;3,0;4,0",
		"0,2;1,2;2,2;3,2",
		"0,4;1,4;2,4",
		"0,6;1,6;2,6",
		"0,8;1,8",
	}); err != nil {
		t.Fatalf("PlaceShips: %v", err)
	}
	board.Board().Set(0, 0, domain.CellHit)
	board.DecrementShips()

	if err := a.Put(ctx, "m2", board); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := a.Put(ctx, "m1", domain.NewPlayerBoard()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := a.Get(ctx, "m2")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if *got.Board() != *board.Board() || got.Remaining() != board.Remaining() || !got.Placed() {
		t.Fatalf("board did not round trip: remaining %d placed %v", got.Remaining(), got.Placed())
	}

	// the returned value is a copy
	got.Board().Set(9, 9, domain.CellShip)
	again, _, _ := a.Get(ctx, "m2")
	if again.Board().Get(9, 9) != domain.CellEmpty {
		t.Fatalf("mutating a loaded board changed the stored one")
	}

	if _, ok, _ := s.For(bob).Get(ctx, "m2"); ok {
		t.Fatalf("another owner can read the board")
	}
	if keys, _ := s.For(bob).Keys(ctx); len(keys) != 0 {
		t.Fatalf("another owner sees keys %v", keys)
	}

	keys, err := a.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "m1" || keys[1] != "m2" {
		t.Fatalf("expected [m1 m2], got %v", keys)
	}

	board.DecrementShips()
	if err := a.Put(ctx, "m2", board); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = a.Get(ctx, "m2")
	if got.Remaining() != domain.FleetCells()-2 {
		t.Fatalf("overwrite not applied, remaining %d", got.Remaining())
	}
}
