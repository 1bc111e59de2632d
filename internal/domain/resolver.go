package domain

// ResolveShot settles the pending shot of m against the target's private
// board. It is the only operation that sees both a Match and a PlayerBoard.
//
// A hit turns the target's ship cell into a hit and decrements the remaining
// counter; when the counter reaches zero the shooter wins. A miss leaves the
// target's board untouched.
func ResolveShot(m *Match, target *PlayerBoard) (Outcome, error) {
	p := m.Pending
	if p == nil {
		return "", ErrNoPendingShot
	}

	own := target.Board()
	hit := own.Get(p.X, p.Y) == CellShip
	if hit {
		own.Set(p.X, p.Y, CellHit)
		target.DecrementShips()
		if target.Remaining() == 0 {
			m.SetWinner(p.Shooter)
		}
	}
	return m.ResolveShot(hit)
}
