package app

import (
	"time"

	"github.com/jaminalder/codex-battleship/internal/domain"
)

// BoardView is a grid of cell codes (0 empty, 1 ship, 2 hit, 3 miss,
// 4 pending), row-major.
type BoardView struct {
	Size  int   `json:"size"`
	Cells []int `json:"cells"`
}

func boardView(b *domain.Board) BoardView {
	cells := make([]int, len(b))
	for i, c := range b {
		cells[i] = int(c)
	}
	return BoardView{Size: domain.BoardSize, Cells: cells}
}

// At returns the cell code at (x, y).
func (v BoardView) At(x, y int) domain.Cell { return domain.Cell(v.Cells[y*v.Size+x]) }

type PendingView struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Shooter string `json:"shooter"`
	Target  string `json:"target"`
}

// MatchView is the public summary of a match. It holds nothing either
// player's ship layout could be recovered from.
type MatchView struct {
	ID       string       `json:"id"`
	Player1  string       `json:"player1"`
	Player2  string       `json:"player2"`
	Turn     string       `json:"turn"`
	Winner   string       `json:"winner,omitempty"`
	PlacedP1 bool         `json:"placed_p1"`
	PlacedP2 bool         `json:"placed_p2"`
	Pending  *PendingView `json:"pending,omitempty"`
	Finished bool         `json:"finished"`
	Created  time.Time    `json:"created"`
	Updated  time.Time    `json:"updated"`
}

func matchView(st MatchState) MatchView {
	m := st.Match
	v := MatchView{
		ID:       m.ID,
		Player1:  m.Player1.String(),
		Player2:  m.Player2.String(),
		Turn:     m.Turn.String(),
		PlacedP1: m.PlacedP1,
		PlacedP2: m.PlacedP2,
		Finished: m.IsFinished(),
		Created:  st.Created,
		Updated:  st.Updated,
	}
	if m.Winner != nil {
		v.Winner = m.Winner.String()
	}
	if p := m.Pending; p != nil {
		v.Pending = &PendingView{X: p.X, Y: p.Y, Shooter: p.Shooter.String(), Target: p.Target.String()}
	}
	return v
}

// View returns the public summary of st.
func (st MatchState) View() MatchView { return matchView(st) }
