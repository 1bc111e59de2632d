package domain

import (
	"testing"

	"github.com/jaminalder/codex-battleship/internal/identity"
)

// standardFleet is a legal fleet laid out on even rows, leaving (9,9) empty.
func standardFleet() []string {
	return []string{
		"0,0;1,0;2,0;3,0;4,0",
		"0,2;1,2;2,2;3,2",
		"0,4;1,4;2,4",
		"0,6;1,6;2,6",
		"0,8;1,8",
	}
}

func testKeys() (identity.Key, identity.Key) {
	var a, b identity.Key
	a[0], b[0] = 1, 2
	return a, b
}

// activeMatch returns a match where both players have placed, plus the two
// private boards holding standardFleet.
func activeMatch(t *testing.T) (*Match, *PlayerBoard, *PlayerBoard) {
	t.Helper()
	p1, p2 := testKeys()
	m, err := NewMatch("match-1", p1, p2)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	b1, b2 := NewPlayerBoard(), NewPlayerBoard()
	if err := b1.PlaceShips(standardFleet()); err != nil {
		t.Fatalf("place p1: %v", err)
	}
	if err := b2.PlaceShips(standardFleet()); err != nil {
		t.Fatalf("place p2: %v", err)
	}
	if err := m.MarkPlaced(p1); err != nil {
		t.Fatalf("MarkPlaced p1: %v", err)
	}
	if err := m.MarkPlaced(p2); err != nil {
		t.Fatalf("MarkPlaced p2: %v", err)
	}
	return &m, &b1, &b2
}

// boardFor picks the private board of the pending target.
func boardFor(m *Match, p1Board, p2Board *PlayerBoard) *PlayerBoard {
	if m.Pending.Target == m.Player1 {
		return p1Board
	}
	return p2Board
}
