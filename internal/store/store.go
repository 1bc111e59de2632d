// Package store defines the private keyed storage for player boards. Every
// read and write goes through a namespace bound to one owner, so a caller can
// only ever reach its own boards.
package store

import (
	"context"

	"github.com/jaminalder/codex-battleship/internal/domain"
	"github.com/jaminalder/codex-battleship/internal/identity"
)

// PrivateStore hands out per-owner namespaces.
type PrivateStore interface {
	For(owner identity.Key) Boards
}

// Boards is one owner's namespace of player boards keyed by match id.
type Boards interface {
	Owner() identity.Key
	Get(ctx context.Context, matchID string) (domain.PlayerBoard, bool, error)
	Put(ctx context.Context, matchID string, board domain.PlayerBoard) error
	Keys(ctx context.Context) ([]string, error)
}
