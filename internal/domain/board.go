package domain

import "fmt"

// BoardSize is the width and height of every board.
const BoardSize = 10

// Cell represents a board cell state. The numeric values are the wire codes.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellShip
	CellHit
	CellMiss
	CellPending
)

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellShip:
		return "ship"
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	case CellPending:
		return "pending"
	default:
		return "unknown"
	}
}

// Coordinate is a position on the board; X is the column, Y the row.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewCoordinate returns ErrOutOfBounds unless both components are in [0, BoardSize).
func NewCoordinate(x, y int) (Coordinate, error) {
	c := Coordinate{X: x, Y: y}
	if !c.Valid() {
		return Coordinate{}, ErrOutOfBounds
	}
	return c, nil
}

func (c Coordinate) Valid() bool { return InBounds(c.X, c.Y) }

// Less orders coordinates row-major, matching the board layout.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// InBounds reports whether (x, y) is on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

// Board is a fixed 10x10 board stored row-major. It is a value type, so
// assigning a Board copies it.
type Board [BoardSize * BoardSize]Cell

// Index returns the row-major offset of (x, y).
func Index(x, y int) int { return y*BoardSize + x }

// Get returns the cell at (x, y). Callers validate coordinates first.
func (b *Board) Get(x, y int) Cell { return b[Index(x, y)] }

// Set writes the cell at (x, y). Callers validate coordinates first.
func (b *Board) Set(x, y int, c Cell) { b[Index(x, y)] = c }

// IsAdjacentViolation reports whether any of the 8 neighbours of (x, y)
// holds a ship.
func (b *Board) IsAdjacentViolation(x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !InBounds(nx, ny) {
				continue
			}
			if b.Get(nx, ny) == CellShip {
				return true
			}
		}
	}
	return false
}

// Count returns how many cells hold c.
func (b *Board) Count(c Cell) int {
	n := 0
	for _, v := range b {
		if v == c {
			n++
		}
	}
	return n
}

// Codes returns the board as wire codes.
func (b *Board) Codes() []uint8 {
	out := make([]uint8, len(b))
	for i, c := range b {
		out[i] = uint8(c)
	}
	return out
}

// BoardFromCodes rebuilds a board from wire codes.
func BoardFromCodes(codes []uint8) (Board, error) {
	var b Board
	if len(codes) != len(b) {
		return Board{}, invalid("board must have 100 cells")
	}
	for i, v := range codes {
		c := Cell(v)
		if c > CellPending {
			return Board{}, invalid(fmt.Sprintf("bad cell code %d at %d", v, i))
		}
		b[i] = c
	}
	return b, nil
}
