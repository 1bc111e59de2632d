package domain

import (
	"sort"
	"strconv"
	"strings"
)

// Ship length limits.
const (
	MinShipLength = 2
	MaxShipLength = 5
)

// Ship is a straight, contiguous run of 2..5 coordinates.
type Ship struct {
	Coords []Coordinate
}

// NewShip validates the shape of a single ship.
func NewShip(coords []Coordinate) (Ship, error) {
	if len(coords) == 0 {
		return Ship{}, ErrEmptyShip
	}
	for _, c := range []ShipCheck{BoundsCheck{}, LengthCheck{}, StraightCheck{}, ContiguityCheck{}} {
		if err := c.CheckShip(nil, coords); err != nil {
			return Ship{}, err
		}
	}
	cp := make([]Coordinate, len(coords))
	copy(cp, coords)
	return Ship{Coords: cp}, nil
}

func (s Ship) Len() int { return len(s.Coords) }

// OverlapsWith reports whether the two ships share a coordinate.
func (s Ship) OverlapsWith(o Ship) bool { return overlaps(s.Coords, o.Coords) }

// IsAdjacentTo reports whether any cell of s touches a cell of o,
// orthogonally or diagonally, without sharing it.
func (s Ship) IsAdjacentTo(o Ship) bool { return touches(s.Coords, o.Coords) }

func overlaps(a, b []Coordinate) bool {
	for _, c1 := range a {
		for _, c2 := range b {
			if c1 == c2 {
				return true
			}
		}
	}
	return false
}

func touches(a, b []Coordinate) bool {
	for _, c1 := range a {
		for _, c2 := range b {
			dx, dy := abs(c1.X-c2.X), abs(c1.Y-c2.Y)
			if dx <= 1 && dy <= 1 && !(dx == 0 && dy == 0) {
				return true
			}
		}
	}
	return false
}

// straightAxis reports whether coords all share X (vertical) or all share Y
// (horizontal). Exactly one must hold.
func straightAxis(coords []Coordinate) (sameX, ok bool) {
	sameX, sameY := true, true
	for _, c := range coords[1:] {
		if c.X != coords[0].X {
			sameX = false
		}
		if c.Y != coords[0].Y {
			sameY = false
		}
	}
	return sameX, sameX != sameY
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// LengthCounts is a histogram of ship lengths, indexed by length.
type LengthCounts [MaxShipLength + 1]int

// FleetRequirement is the mandated number of ships per length.
var FleetRequirement = LengthCounts{2: 1, 3: 2, 4: 1, 5: 1}

// FleetCells is the number of cells a complete fleet occupies.
func FleetCells() int {
	n := 0
	for length, count := range FleetRequirement {
		n += length * count
	}
	return n
}

// Fleet is a complete, legal set of ships.
type Fleet struct {
	Ships []Ship
}

// NewFleet checks composition and that no two ships overlap or touch.
func NewFleet(ships []Ship) (Fleet, error) {
	var counts LengthCounts
	all := make([][]Coordinate, 0, len(ships))
	for _, s := range ships {
		if s.Len() < MinShipLength || s.Len() > MaxShipLength {
			return Fleet{}, ErrShipLength
		}
		counts[s.Len()]++
		all = append(all, s.Coords)
	}
	checks := append([]FleetCheck{SeparationCheck{}}, DefaultFleetChecks...)
	for _, c := range checks {
		if err := c.CheckFleet(counts, all); err != nil {
			return Fleet{}, err
		}
	}
	return Fleet{Ships: ships}, nil
}

func (f Fleet) Len() int { return len(f.Ships) }

// Cells returns the number of cells occupied by the fleet.
func (f Fleet) Cells() int {
	n := 0
	for _, s := range f.Ships {
		n += s.Len()
	}
	return n
}

// Groups encodes the fleet in the submission format, one string per ship.
func (f Fleet) Groups() []string {
	out := make([]string, len(f.Ships))
	for i, s := range f.Ships {
		out[i] = FormatShip(s.Coords)
	}
	return out
}

// ParseShip decodes a "x,y;x,y;..." group. Empty segments (such as a
// trailing ';') are skipped; anything else that is not a pair of in-range
// integers fails with ErrMalformedPair or ErrOutOfBounds.
func ParseShip(group string) ([]Coordinate, error) {
	var coords []Coordinate
	for _, part := range strings.Split(group, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sx, sy, ok := strings.Cut(part, ",")
		if !ok || strings.Contains(sy, ",") {
			return nil, ErrMalformedPair
		}
		x, errX := strconv.Atoi(strings.TrimSpace(sx))
		y, errY := strconv.Atoi(strings.TrimSpace(sy))
		if errX != nil || errY != nil {
			return nil, ErrMalformedPair
		}
		c, err := NewCoordinate(x, y)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// FormatShip is the inverse of ParseShip.
func FormatShip(coords []Coordinate) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
	}
	return strings.Join(parts, ";")
}

// sortedCoords returns a row-major sorted copy.
func sortedCoords(coords []Coordinate) []Coordinate {
	cp := make([]Coordinate, len(coords))
	copy(cp, coords)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Less(cp[j]) })
	return cp
}
