package domain

// PlayerBoard is one player's private state for one match: their own board,
// the number of ship cells not yet hit, and whether placement is done.
type PlayerBoard struct {
	own       Board
	remaining int
	placed    bool
}

// NewPlayerBoard returns an empty, unplaced board.
func NewPlayerBoard() PlayerBoard { return PlayerBoard{} }

// RestorePlayerBoard rebuilds a board from persisted fields.
func RestorePlayerBoard(own Board, remaining int, placed bool) PlayerBoard {
	if remaining < 0 {
		remaining = 0
	}
	return PlayerBoard{own: own, remaining: remaining, placed: placed}
}

// PlaceShips places a whole fleet given in the submission format. The
// submission is validated against a scratch copy of the board and only
// committed when every ship and the fleet as a whole pass.
func (p *PlayerBoard) PlaceShips(groups []string) error {
	return p.PlaceShipsWith(DefaultValidator, groups)
}

// PlaceShipsWith is PlaceShips with a custom rule set.
func (p *PlayerBoard) PlaceShipsWith(v Validator, groups []string) error {
	if p.placed {
		return ErrAlreadyPlaced
	}
	if len(groups) == 0 {
		return ErrNoShips
	}

	scratch := p.own
	var counts LengthCounts
	all := make([][]Coordinate, 0, len(groups))
	cells := 0
	for _, g := range groups {
		coords, err := ParseShip(g)
		if err != nil {
			return err
		}
		if err := v.ValidateShip(&scratch, coords); err != nil {
			return err
		}
		if len(coords) > MaxShipLength {
			return ErrShipLength
		}
		counts[len(coords)]++
		all = append(all, coords)
		for _, c := range coords {
			scratch.Set(c.X, c.Y, CellShip)
		}
		cells += len(coords)
	}
	if err := v.ValidateFleet(counts, all); err != nil {
		return err
	}

	p.own = scratch
	p.remaining += cells
	p.placed = true
	return nil
}

// DecrementShips removes one remaining ship cell, never going below zero.
func (p *PlayerBoard) DecrementShips() {
	if p.remaining > 0 {
		p.remaining--
	}
}

// Board returns the own board for hit application.
func (p *PlayerBoard) Board() *Board { return &p.own }

// Remaining is the number of ship cells not yet hit.
func (p *PlayerBoard) Remaining() int { return p.remaining }

func (p *PlayerBoard) Placed() bool { return p.placed }
