package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jaminalder/codex-battleship/internal/domain"
	"github.com/jaminalder/codex-battleship/internal/identity"
	"github.com/jaminalder/codex-battleship/internal/store"
)

// Store keeps player boards in memory. Boards are stored and returned as
// value copies.
type Store struct {
	mu     sync.RWMutex
	boards map[identity.Key]map[string]domain.PlayerBoard
}

func New() *Store {
	return &Store{boards: make(map[identity.Key]map[string]domain.PlayerBoard)}
}

func (s *Store) For(owner identity.Key) store.Boards {
	return &namespace{s: s, owner: owner}
}

type namespace struct {
	s     *Store
	owner identity.Key
}

func (n *namespace) Owner() identity.Key { return n.owner }

func (n *namespace) Get(_ context.Context, matchID string) (domain.PlayerBoard, bool, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()
	b, ok := n.s.boards[n.owner][matchID]
	return b, ok, nil
}

func (n *namespace) Put(_ context.Context, matchID string, board domain.PlayerBoard) error {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	m := n.s.boards[n.owner]
	if m == nil {
		m = make(map[string]domain.PlayerBoard)
		n.s.boards[n.owner] = m
	}
	m[matchID] = board
	return nil
}

func (n *namespace) Keys(_ context.Context) ([]string, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()
	keys := make([]string, 0, len(n.s.boards[n.owner]))
	for k := range n.s.boards[n.owner] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

var _ store.PrivateStore = (*Store)(nil)
