package domain

import (
	"errors"
	"testing"
)

func TestShipChecksIndividually(t *testing.T) {
	var board Board
	board.Set(5, 5, CellShip)

	cases := []struct {
		name   string
		check  ShipCheck
		coords []Coordinate
		want   error
	}{
		{"bounds ok", BoundsCheck{}, coords([2]int{0, 0}, [2]int{9, 9}), nil},
		{"bounds fail", BoundsCheck{}, coords([2]int{0, 0}, [2]int{0, 10}), ErrOutOfBounds},
		{"length short", LengthCheck{}, coords([2]int{0, 0}), ErrShipLength},
		{"length ok", LengthCheck{}, coords([2]int{0, 0}, [2]int{0, 1}), nil},
		{"straight fail", StraightCheck{}, coords([2]int{0, 0}, [2]int{1, 1}), ErrNotStraight},
		{"straight ok", StraightCheck{}, coords([2]int{3, 0}, [2]int{3, 1}), nil},
		{"contiguity fail", ContiguityCheck{}, coords([2]int{0, 0}, [2]int{2, 0}), ErrNotContiguous},
		{"contiguity unordered", ContiguityCheck{}, coords([2]int{2, 0}, [2]int{0, 0}, [2]int{1, 0}), nil},
		{"overlap fail", OverlapCheck{}, coords([2]int{5, 5}, [2]int{5, 6}), ErrOverlap},
		{"overlap ok", OverlapCheck{}, coords([2]int{0, 0}, [2]int{0, 1}), nil},
		{"adjacency diagonal", AdjacencyCheck{}, coords([2]int{6, 6}, [2]int{6, 7}), ErrAdjacent},
		{"adjacency ok", AdjacencyCheck{}, coords([2]int{7, 7}, [2]int{7, 8}), nil},
	}
	for _, tc := range cases {
		err := tc.check.CheckShip(&board, tc.coords)
		if tc.want == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestFleetChecksIndividually(t *testing.T) {
	ships := [][]Coordinate{
		coords([2]int{0, 0}, [2]int{0, 1}),
		coords([2]int{0, 1}, [2]int{1, 1}),
	}
	if err := (UniquenessCheck{}).CheckFleet(LengthCounts{}, ships); !errors.Is(err, ErrDuplicateCoord) {
		t.Fatalf("expected ErrDuplicateCoord, got %v", err)
	}
	if err := (CompositionCheck{}).CheckFleet(FleetRequirement, nil); err != nil {
		t.Fatalf("required composition rejected: %v", err)
	}
	extra := FleetRequirement
	extra[2]++
	if err := (CompositionCheck{}).CheckFleet(extra, nil); !errors.Is(err, ErrFleetComposition) {
		t.Fatalf("expected ErrFleetComposition, got %v", err)
	}
}

func TestValidatorShortCircuits(t *testing.T) {
	calls := 0
	counting := shipCheckFunc(func(*Board, []Coordinate) error { calls++; return nil })
	v := NewValidator([]ShipCheck{BoundsCheck{}, counting}, nil)
	if err := v.ValidateShip(&Board{}, coords([2]int{0, 10}, [2]int{0, 11})); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("later checks ran after a failure")
	}
	if err := v.ValidateShip(&Board{}, coords([2]int{0, 0}, [2]int{0, 1})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the second check to run once, ran %d times", calls)
	}
}

func TestValidatorAcceptsExtraRules(t *testing.T) {
	noEdges := shipCheckFunc(func(_ *Board, cs []Coordinate) error {
		for _, c := range cs {
			if c.X == 0 || c.Y == 0 {
				return invalid("no ships on the edge")
			}
		}
		return nil
	})
	v := NewValidator(append(append([]ShipCheck{}, DefaultShipChecks...), noEdges), nil)
	b := NewPlayerBoard()
	err := b.PlaceShipsWith(v, standardFleet())
	if !errors.Is(err, ErrInvalid) || b.Placed() {
		t.Fatalf("expected the extra rule to reject the fleet, got %v", err)
	}
}

func TestValidateShipEmpty(t *testing.T) {
	if err := DefaultValidator.ValidateShip(&Board{}, nil); !errors.Is(err, ErrEmptyShip) {
		t.Fatalf("expected ErrEmptyShip, got %v", err)
	}
}

type shipCheckFunc func(*Board, []Coordinate) error

func (f shipCheckFunc) CheckShip(b *Board, cs []Coordinate) error { return f(b, cs) }
