package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrNotFound  = errors.New("not found")
	ErrInvalid   = errors.New("invalid input")
	ErrForbidden = errors.New("forbidden")
	ErrFinished  = errors.New("already finished")
)

// Errors returned by domain operations.
var (
	ErrOutOfBounds      = invalid("coordinate out of bounds")
	ErrEmptyShip        = invalid("ship cannot be empty")
	ErrShipLength       = invalid("ship length must be 2-5")
	ErrNotStraight      = invalid("ship must be straight")
	ErrNotContiguous    = invalid("ship must be contiguous")
	ErrOverlap          = invalid("ships overlap")
	ErrAdjacent         = invalid("ships are adjacent")
	ErrDuplicateCoord   = invalid("duplicate coordinates in fleet")
	ErrFleetComposition = invalid("fleet must be 1x5, 1x4, 2x3, 1x2")
	ErrMalformedPair    = invalid("malformed coordinate pair")
	ErrNoShips          = invalid("no ships")
	ErrAlreadyPlaced    = invalid("already placed")
	ErrSamePlayers      = invalid("players must differ")
	ErrNotPlaced        = invalid("both players must place ships first")
	ErrShotPending      = invalid("shot already pending")
	ErrNoPendingShot    = invalid("no pending shot")
	ErrAlreadyTargeted  = invalid("cell already targeted")
	ErrNotAPlayer       = forbidden("not a player")
	ErrNotYourTurn      = forbidden("not your turn")
	ErrNotTheTarget     = forbidden("not the target")
)

func invalid(reason string) error   { return fmt.Errorf("%w: %s", ErrInvalid, reason) }
func forbidden(reason string) error { return fmt.Errorf("%w: %s", ErrForbidden, reason) }

// NotFound reports a missing match or board by identifier.
func NotFound(id string) error { return fmt.Errorf("%w: %s", ErrNotFound, id) }

// Kind is the tag of an error in the NotFound/Invalid/Forbidden/Finished taxonomy.
type Kind string

const (
	KindNone      Kind = ""
	KindNotFound  Kind = "NotFound"
	KindInvalid   Kind = "Invalid"
	KindForbidden Kind = "Forbidden"
	KindFinished  Kind = "Finished"
)

// KindOf returns the taxonomy tag of err, or KindNone for foreign errors.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalid):
		return KindInvalid
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrFinished):
		return KindFinished
	default:
		return KindNone
	}
}

// Reason strips the kind prefix from a taxonomy error, e.g. "not your turn".
func Reason(err error) string {
	msg := err.Error()
	for _, k := range []error{ErrNotFound, ErrInvalid, ErrForbidden} {
		prefix := k.Error() + ": "
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
