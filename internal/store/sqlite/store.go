package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jaminalder/codex-battleship/internal/constants"
	"github.com/jaminalder/codex-battleship/internal/domain"
	"github.com/jaminalder/codex-battleship/internal/identity"
	"github.com/jaminalder/codex-battleship/internal/store"
	"github.com/rs/zerolog"
)

const (
	selectBoard = `SELECT cells, remaining, placed FROM player_boards WHERE owner = ? AND match_id = ?`
	upsertBoard = `INSERT INTO player_boards (owner, match_id, cells, remaining, placed, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(owner, match_id) DO UPDATE SET
    cells = excluded.cells,
    remaining = excluded.remaining,
    placed = excluded.placed,
    updated_at = excluded.updated_at`
	selectKeys = `SELECT match_id FROM player_boards WHERE owner = ? ORDER BY match_id`
)

// Store persists player boards in the player_boards table. The schema is
// created by the database package migrations.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

func New(db *sql.DB, logger zerolog.Logger) *Store {
	return &Store{db: db, logger: logger.With().Str("component", "board_store").Logger()}
}

func (s *Store) For(owner identity.Key) store.Boards {
	return &namespace{s: s, owner: owner, ownerKey: owner.String()}
}

type namespace struct {
	s        *Store
	owner    identity.Key
	ownerKey string
}

func (n *namespace) Owner() identity.Key { return n.owner }

func (n *namespace) Get(ctx context.Context, matchID string) (domain.PlayerBoard, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var (
		cells     []byte
		remaining int
		placed    bool
	)
	err := n.s.db.QueryRowContext(ctx, selectBoard, n.ownerKey, matchID).Scan(&cells, &remaining, &placed)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PlayerBoard{}, false, nil
	}
	if err != nil {
		n.s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to load board")
		return domain.PlayerBoard{}, false, fmt.Errorf("load board %s: %w", matchID, err)
	}
	own, err := domain.BoardFromCodes(cells)
	if err != nil {
		return domain.PlayerBoard{}, false, fmt.Errorf("decode board %s: %w", matchID, err)
	}
	return domain.RestorePlayerBoard(own, remaining, placed), true, nil
}

func (n *namespace) Put(ctx context.Context, matchID string, board domain.PlayerBoard) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	_, err := n.s.db.ExecContext(ctx, upsertBoard,
		n.ownerKey, matchID, board.Board().Codes(), board.Remaining(), board.Placed(), time.Now().UTC())
	if err != nil {
		n.s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to save board")
		return fmt.Errorf("save board %s: %w", matchID, err)
	}
	n.s.logger.Debug().Str("match_id", matchID).Int("remaining", board.Remaining()).Msg("board saved")
	return nil
}

func (n *namespace) Keys(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	rows, err := n.s.db.QueryContext(ctx, selectKeys, n.ownerKey)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan board key: %w", err)
		}
		keys = append(keys, id)
	}
	return keys, rows.Err()
}

var _ store.PrivateStore = (*Store)(nil)
