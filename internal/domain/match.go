package domain

import "github.com/jaminalder/codex-battleship/internal/identity"

// Outcome labels a resolved shot.
type Outcome string

const (
	OutcomeHit  Outcome = "hit"
	OutcomeMiss Outcome = "miss"
)

// PendingShot is a proposed shot awaiting resolution.
type PendingShot struct {
	X       int          `json:"x"`
	Y       int          `json:"y"`
	Shooter identity.Key `json:"shooter"`
	Target  identity.Key `json:"target"`
}

// Match is the shared state of one game. Pending and Winner are replaced,
// never mutated in place, so a shallow copy of a Match is independent.
type Match struct {
	ID       string
	Player1  identity.Key
	Player2  identity.Key
	Turn     identity.Key
	Winner   *identity.Key
	PlacedP1 bool
	PlacedP2 bool
	Pending  *PendingShot
	ShotsP1  Board
	ShotsP2  Board
}

// NewMatch returns a match in setup with player1 to move first.
func NewMatch(id string, player1, player2 identity.Key) (Match, error) {
	if player1 == player2 {
		return Match{}, ErrSamePlayers
	}
	return Match{ID: id, Player1: player1, Player2: player2, Turn: player1}, nil
}

func (m *Match) IsPlayer(p identity.Key) bool { return p == m.Player1 || p == m.Player2 }

// Opponent returns the other player. p must be one of the two players.
func (m *Match) Opponent(p identity.Key) identity.Key {
	if p == m.Player1 {
		return m.Player2
	}
	return m.Player1
}

func (m *Match) IsTurn(p identity.Key) bool { return m.Turn == p }

func (m *Match) IsFinished() bool { return m.Winner != nil }

func (m *Match) BothPlaced() bool { return m.PlacedP1 && m.PlacedP2 }

func (m *Match) HasPendingShot() bool { return m.Pending != nil }

// HasPlaced reports whether p has completed placement.
func (m *Match) HasPlaced(p identity.Key) bool {
	if p == m.Player1 {
		return m.PlacedP1
	}
	return p == m.Player2 && m.PlacedP2
}

// MarkPlaced records that p completed placement.
func (m *Match) MarkPlaced(p identity.Key) error {
	switch p {
	case m.Player1:
		m.PlacedP1 = true
	case m.Player2:
		m.PlacedP2 = true
	default:
		return ErrNotAPlayer
	}
	return nil
}

// ShotsFor returns p's shot-history board.
func (m *Match) ShotsFor(p identity.Key) *Board {
	if p == m.Player1 {
		return &m.ShotsP1
	}
	return &m.ShotsP2
}

func (m *Match) switchTurn() { m.Turn = m.Opponent(m.Turn) }

// ProposeShot records a shot by shooter at (x, y) and marks it pending in the
// shooter's history. The turn does not change until the shot is resolved.
func (m *Match) ProposeShot(shooter identity.Key, x, y int) error {
	if m.IsFinished() {
		return ErrFinished
	}
	if !m.BothPlaced() {
		return ErrNotPlaced
	}
	if !InBounds(x, y) {
		return ErrOutOfBounds
	}
	if m.HasPendingShot() {
		return ErrShotPending
	}
	if !m.IsPlayer(shooter) {
		return ErrNotAPlayer
	}
	if !m.IsTurn(shooter) {
		return ErrNotYourTurn
	}
	shots := m.ShotsFor(shooter)
	if shots.Get(x, y) != CellEmpty {
		return ErrAlreadyTargeted
	}

	shots.Set(x, y, CellPending)
	m.Pending = &PendingShot{X: x, Y: y, Shooter: shooter, Target: m.Opponent(shooter)}
	return nil
}

// AcknowledgeShot checks that target is the one the pending shot is aimed at.
// It does not change state; resolution follows separately.
func (m *Match) AcknowledgeShot(target identity.Key) error {
	if m.Pending == nil {
		return ErrNoPendingShot
	}
	if m.Pending.Target != target {
		return ErrNotTheTarget
	}
	return nil
}

// ResolveShot consumes the pending shot, records the outcome in the shooter's
// history, and passes the turn unless a winner has been set.
func (m *Match) ResolveShot(hit bool) (Outcome, error) {
	p := m.Pending
	if p == nil {
		return "", ErrNoPendingShot
	}
	m.Pending = nil

	outcome, cell := OutcomeMiss, CellMiss
	if hit {
		outcome, cell = OutcomeHit, CellHit
	}
	m.ShotsFor(p.Shooter).Set(p.X, p.Y, cell)

	if !m.IsFinished() {
		m.switchTurn()
	}
	return outcome, nil
}

// SetWinner ends the match. It is one-way.
func (m *Match) SetWinner(p identity.Key) {
	if m.Winner != nil {
		return
	}
	w := p
	m.Winner = &w
}
