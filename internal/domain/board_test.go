package domain

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestNewCoordinateRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.IntRange(-3, BoardSize+3).Draw(t, "x")
		y := rapid.IntRange(-3, BoardSize+3).Draw(t, "y")
		c, err := NewCoordinate(x, y)
		want := x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
		if want && err != nil {
			t.Fatalf("NewCoordinate(%d,%d) failed: %v", x, y, err)
		}
		if !want && !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("NewCoordinate(%d,%d) expected ErrOutOfBounds, got %v", x, y, err)
		}
		if want && (c.X != x || c.Y != y) {
			t.Fatalf("unexpected coordinate %+v", c)
		}
	})
}

func TestBoardIsRowMajor(t *testing.T) {
	var b Board
	b.Set(3, 7, CellShip)
	if b[7*BoardSize+3] != CellShip {
		t.Fatalf("expected index y*size+x to hold the ship")
	}
	if b.Get(3, 7) != CellShip || b.Get(7, 3) != CellEmpty {
		t.Fatalf("Get does not mirror Set")
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	var b Board
	if b.Count(CellEmpty) != BoardSize*BoardSize {
		t.Fatalf("expected empty board, got %d empty cells", b.Count(CellEmpty))
	}
}

func TestIsAdjacentViolation(t *testing.T) {
	var b Board
	b.Set(5, 5, CellShip)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !b.IsAdjacentViolation(5+dx, 5+dy) {
				t.Fatalf("expected violation at (%d,%d)", 5+dx, 5+dy)
			}
		}
	}
	if b.IsAdjacentViolation(5, 5) {
		t.Fatalf("a cell is not adjacent to itself")
	}
	if b.IsAdjacentViolation(7, 5) || b.IsAdjacentViolation(3, 3) {
		t.Fatalf("distance two must not violate")
	}
}

func TestIsAdjacentViolationAtEdges(t *testing.T) {
	var b Board
	b.Set(0, 1, CellShip)
	if !b.IsAdjacentViolation(0, 0) || !b.IsAdjacentViolation(1, 0) {
		t.Fatalf("expected corner neighbours to violate")
	}
	b = Board{}
	b.Set(9, 9, CellShip)
	if !b.IsAdjacentViolation(8, 8) {
		t.Fatalf("expected diagonal violation near the far corner")
	}
	if b.IsAdjacentViolation(0, 0) {
		t.Fatalf("no ship near origin")
	}
}

func TestOnlyShipCellsViolateAdjacency(t *testing.T) {
	var b Board
	b.Set(4, 4, CellHit)
	b.Set(4, 5, CellMiss)
	b.Set(5, 4, CellPending)
	if b.IsAdjacentViolation(5, 5) {
		t.Fatalf("non-ship cells must not violate adjacency")
	}
}

func TestCodesRoundTrip(t *testing.T) {
	var b Board
	b.Set(0, 0, CellShip)
	b.Set(1, 0, CellHit)
	b.Set(2, 0, CellMiss)
	b.Set(3, 0, CellPending)
	codes := b.Codes()
	if codes[0] != 1 || codes[1] != 2 || codes[2] != 3 || codes[3] != 4 || codes[4] != 0 {
		t.Fatalf("unexpected wire codes: %v", codes[:5])
	}
	got, err := BoardFromCodes(codes)
	if err != nil {
		t.Fatalf("BoardFromCodes: %v", err)
	}
	if got != b {
		t.Fatalf("board did not survive the round trip")
	}
	if _, err := BoardFromCodes(codes[:10]); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for short input, got %v", err)
	}
	codes[42] = 9
	if _, err := BoardFromCodes(codes); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for an unknown cell code, got %v", err)
	}
}
