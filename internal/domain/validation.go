package domain

// ShipCheck is one placement rule applied to a candidate ship. board is the
// owner's board as staged so far; it may be nil for shape-only checks.
type ShipCheck interface {
	CheckShip(board *Board, coords []Coordinate) error
}

// FleetCheck is one rule applied once a whole submission has been parsed.
type FleetCheck interface {
	CheckFleet(counts LengthCounts, ships [][]Coordinate) error
}

// Default rule sets, in execution order.
var (
	DefaultShipChecks = []ShipCheck{
		BoundsCheck{},
		LengthCheck{},
		StraightCheck{},
		ContiguityCheck{},
		OverlapCheck{},
		AdjacencyCheck{},
	}
	DefaultFleetChecks = []FleetCheck{
		UniquenessCheck{},
		CompositionCheck{},
	}
)

// BoundsCheck rejects coordinates off the board.
type BoundsCheck struct{}

func (BoundsCheck) CheckShip(_ *Board, coords []Coordinate) error {
	for _, c := range coords {
		if !c.Valid() {
			return ErrOutOfBounds
		}
	}
	return nil
}

// LengthCheck enforces 2..5 cells.
type LengthCheck struct{}

func (LengthCheck) CheckShip(_ *Board, coords []Coordinate) error {
	if len(coords) < MinShipLength || len(coords) > MaxShipLength {
		return ErrShipLength
	}
	return nil
}

// StraightCheck requires all cells to share exactly one axis.
type StraightCheck struct{}

func (StraightCheck) CheckShip(_ *Board, coords []Coordinate) error {
	if len(coords) == 0 {
		return ErrEmptyShip
	}
	if _, ok := straightAxis(coords); !ok {
		return ErrNotStraight
	}
	return nil
}

// ContiguityCheck requires unit steps along the shared axis.
type ContiguityCheck struct{}

func (ContiguityCheck) CheckShip(_ *Board, coords []Coordinate) error {
	if len(coords) < 2 {
		return nil
	}
	sameX, _ := straightAxis(coords)
	sorted := sortedCoords(coords)
	for i := 1; i < len(sorted); i++ {
		a, b := sorted[i-1], sorted[i]
		if sameX && (b.X != a.X || b.Y-a.Y != 1) {
			return ErrNotContiguous
		}
		if !sameX && (b.Y != a.Y || b.X-a.X != 1) {
			return ErrNotContiguous
		}
	}
	return nil
}

// OverlapCheck rejects cells already holding a ship.
type OverlapCheck struct{}

func (OverlapCheck) CheckShip(board *Board, coords []Coordinate) error {
	if board == nil {
		return nil
	}
	for _, c := range coords {
		if board.Get(c.X, c.Y) == CellShip {
			return ErrOverlap
		}
	}
	return nil
}

// AdjacencyCheck rejects cells touching an existing ship, diagonals included.
type AdjacencyCheck struct{}

func (AdjacencyCheck) CheckShip(board *Board, coords []Coordinate) error {
	if board == nil {
		return nil
	}
	for _, c := range coords {
		if board.IsAdjacentViolation(c.X, c.Y) {
			return ErrAdjacent
		}
	}
	return nil
}

// UniquenessCheck rejects a coordinate appearing twice across the fleet.
type UniquenessCheck struct{}

func (UniquenessCheck) CheckFleet(_ LengthCounts, ships [][]Coordinate) error {
	seen := make(map[Coordinate]struct{})
	for _, s := range ships {
		for _, c := range s {
			if _, dup := seen[c]; dup {
				return ErrDuplicateCoord
			}
			seen[c] = struct{}{}
		}
	}
	return nil
}

// CompositionCheck requires exactly FleetRequirement.
type CompositionCheck struct{}

func (CompositionCheck) CheckFleet(counts LengthCounts, _ [][]Coordinate) error {
	if counts != FleetRequirement {
		return ErrFleetComposition
	}
	return nil
}

// SeparationCheck rejects any pair of ships that overlap or touch. Placement
// gets the same guarantee incrementally from OverlapCheck and AdjacencyCheck.
type SeparationCheck struct{}

func (SeparationCheck) CheckFleet(_ LengthCounts, ships [][]Coordinate) error {
	for i := range ships {
		for j := i + 1; j < len(ships); j++ {
			if overlaps(ships[i], ships[j]) {
				return ErrOverlap
			}
			if touches(ships[i], ships[j]) {
				return ErrAdjacent
			}
		}
	}
	return nil
}

// Validator runs ship and fleet rules in order, stopping at the first failure.
type Validator struct {
	ship  []ShipCheck
	fleet []FleetCheck
}

// NewValidator builds a validator; nil slices fall back to the defaults.
func NewValidator(ship []ShipCheck, fleet []FleetCheck) Validator {
	if ship == nil {
		ship = DefaultShipChecks
	}
	if fleet == nil {
		fleet = DefaultFleetChecks
	}
	return Validator{ship: ship, fleet: fleet}
}

// DefaultValidator applies the standard rules.
var DefaultValidator = NewValidator(nil, nil)

func (v Validator) ValidateShip(board *Board, coords []Coordinate) error {
	if len(coords) == 0 {
		return ErrEmptyShip
	}
	for _, c := range v.ship {
		if err := c.CheckShip(board, coords); err != nil {
			return err
		}
	}
	return nil
}

func (v Validator) ValidateFleet(counts LengthCounts, ships [][]Coordinate) error {
	for _, c := range v.fleet {
		if err := c.CheckFleet(counts, ships); err != nil {
			return err
		}
	}
	return nil
}
