package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jaminalder/codex-battleship/internal/domain"
	"github.com/jaminalder/codex-battleship/internal/events"
	"github.com/jaminalder/codex-battleship/internal/identity"
	"github.com/jaminalder/codex-battleship/internal/store"
	"github.com/rs/zerolog"
)

// Errors exposed by the service layer.
var (
	ErrMatchActive     = fmt.Errorf("%w: another match is active", domain.ErrInvalid)
	ErrTargetBoardGone = fmt.Errorf("%w: target board unavailable", domain.ErrInvalid)
	ErrNoActiveMatch   = fmt.Errorf("%w: no active match", domain.ErrNotFound)
	ErrBoardNotFound   = fmt.Errorf("%w: no board for this match", domain.ErrNotFound)
)

// MatchState is the registry entry tracked per match.
type MatchState struct {
	Match   domain.Match
	Created time.Time
	Updated time.Time
}

// Service owns the match registry and mediates every operation between the
// shared matches and each player's private boards. All operations are
// serialized behind one mutex.
type Service struct {
	mu      sync.Mutex
	matches map[string]*MatchState
	active  string

	boards store.PrivateStore
	hub    *events.Hub
	sink   events.Sink
	ids    IDGenerator
	now    func() time.Time
	single bool
	logger zerolog.Logger
}

type Option func(*Service)

func WithLogger(l zerolog.Logger) Option { return func(s *Service) { s.logger = l } }

func WithHub(h *events.Hub) Option { return func(s *Service) { s.hub = h } }

// WithSink adds a sink that receives every event after the log and the hub.
func WithSink(sink events.Sink) Option {
	return func(s *Service) { s.sink = events.Multi{s.sink, sink} }
}

func WithIDs(g IDGenerator) Option { return func(s *Service) { s.ids = g } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithSingleActiveMatch controls whether CreateMatch refuses while another
// unfinished match exists.
func WithSingleActiveMatch(on bool) Option { return func(s *Service) { s.single = on } }

// NewService creates a service backed by boards.
func NewService(boards store.PrivateStore, opts ...Option) *Service {
	s := &Service{
		matches: make(map[string]*MatchState),
		boards:  boards,
		now:     time.Now,
		single:  true,
		logger:  zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.hub == nil {
		s.hub = events.NewHub()
	}
	if s.ids == nil {
		s.ids = NewClockIDs(s.now)
	}
	s.sink = events.Multi{events.NewLogSink(s.logger), s.hub, s.sink}
	return s
}

// Subscribe registers a live subscriber for a match's public events.
func (s *Service) Subscribe(ctx context.Context, matchID string) (<-chan []byte, func()) {
	return s.hub.Subscribe(ctx, matchID)
}

// CreateMatch starts a match between caller (player1, moves first) and opponent.
func (s *Service) CreateMatch(ctx context.Context, caller, opponent identity.Key) (MatchState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.single {
		if cur, ok := s.matches[s.active]; ok && !cur.Match.IsFinished() {
			return MatchState{}, ErrMatchActive
		}
	}
	m, err := domain.NewMatch(s.ids.NextID(), caller, opponent)
	if err != nil {
		return MatchState{}, err
	}
	now := s.now()
	st := &MatchState{Match: m, Created: now, Updated: now}
	s.matches[m.ID] = st
	s.active = m.ID

	s.logger.Info().
		Str("match_id", m.ID).
		Str("player1", caller.Short()).
		Str("player2", opponent.Short()).
		Msg("match created")
	s.emitLocked(ctx, events.Event{Kind: events.MatchCreated, MatchID: m.ID, Player: caller.String()})
	return *st, nil
}

// PlaceShips validates and commits caller's fleet into caller's own namespace.
func (s *Service) PlaceShips(ctx context.Context, caller identity.Key, matchID string, ships []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.lookupLocked(matchID)
	if err != nil {
		return err
	}
	if st.Match.IsFinished() {
		return domain.ErrFinished
	}
	if !st.Match.IsPlayer(caller) {
		return domain.ErrNotAPlayer
	}

	boards := s.boards.For(caller)
	pb, ok, err := boards.Get(ctx, matchID)
	if err != nil {
		return err
	}
	if !ok {
		pb = domain.NewPlayerBoard()
	}
	if err := pb.PlaceShips(ships); err != nil {
		return err
	}
	m := st.Match
	if err := m.MarkPlaced(caller); err != nil {
		return err
	}
	if err := boards.Put(ctx, matchID, pb); err != nil {
		return err
	}
	st.Match = m
	st.Updated = s.now()

	s.logger.Info().
		Str("match_id", matchID).
		Str("player", caller.Short()).
		Bool("both_placed", m.BothPlaced()).
		Msg("ships placed")
	s.emitLocked(ctx, events.Event{Kind: events.ShipsPlaced, MatchID: matchID, Player: caller.String()})
	return nil
}

// ProposeShot records caller's shot at (x, y). The turn passes only once the
// target acknowledges.
func (s *Service) ProposeShot(ctx context.Context, caller identity.Key, matchID string, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.lookupLocked(matchID)
	if err != nil {
		return err
	}
	m := st.Match
	if err := m.ProposeShot(caller, x, y); err != nil {
		return err
	}
	st.Match = m
	st.Updated = s.now()

	s.logger.Debug().
		Str("match_id", matchID).
		Str("shooter", caller.Short()).
		Int("x", x).
		Int("y", y).
		Msg("shot proposed")
	c := domain.Coordinate{X: x, Y: y}
	s.emitLocked(ctx, events.Event{Kind: events.ShotProposed, MatchID: matchID, Player: caller.String(), Coord: &c})
	return nil
}

// AcknowledgeShot lets the target of the pending shot resolve it against the
// target's own board. The match and the board change together or not at all.
func (s *Service) AcknowledgeShot(ctx context.Context, caller identity.Key, matchID string) (domain.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.lookupLocked(matchID)
	if err != nil {
		return "", err
	}
	if st.Match.IsFinished() {
		return "", domain.ErrFinished
	}
	m := st.Match
	if err := m.AcknowledgeShot(caller); err != nil {
		return "", err
	}

	boards := s.boards.For(caller)
	pb, ok, err := boards.Get(ctx, matchID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrTargetBoardGone
	}
	shot := *m.Pending
	outcome, err := domain.ResolveShot(&m, &pb)
	if err != nil {
		return "", err
	}
	if err := boards.Put(ctx, matchID, pb); err != nil {
		return "", err
	}
	st.Match = m
	st.Updated = s.now()

	s.logger.Info().
		Str("match_id", matchID).
		Str("shooter", shot.Shooter.Short()).
		Int("x", shot.X).
		Int("y", shot.Y).
		Str("result", string(outcome)).
		Int("remaining", pb.Remaining()).
		Msg("shot resolved")

	c := domain.Coordinate{X: shot.X, Y: shot.Y}
	s.emitLocked(ctx, events.Event{Kind: events.ShotFired, MatchID: matchID, Player: shot.Shooter.String(), Coord: &c, Result: outcome})
	if m.Winner != nil {
		s.logger.Info().Str("match_id", matchID).Str("winner", m.Winner.Short()).Msg("match won")
		s.emitLocked(ctx, events.Event{Kind: events.Winner, MatchID: matchID, Player: m.Winner.String()})
		s.emitLocked(ctx, events.Event{Kind: events.MatchEnded, MatchID: matchID})
	}
	return outcome, nil
}

// OwnBoard returns caller's own board for a match, with the incoming pending
// shot overlaid when caller is its target.
func (s *Service) OwnBoard(ctx context.Context, caller identity.Key, matchID string) (BoardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.lookupLocked(matchID)
	if err != nil {
		return BoardView{}, err
	}
	pb, ok, err := s.boards.For(caller).Get(ctx, matchID)
	if err != nil {
		return BoardView{}, err
	}
	if !ok {
		return BoardView{}, ErrBoardNotFound
	}
	view := boardView(pb.Board())
	if p := st.Match.Pending; p != nil && p.Target == caller {
		view.Cells[domain.Index(p.X, p.Y)] = int(domain.CellPending)
	}
	return view, nil
}

// Shots returns caller's shot history for a match.
func (s *Service) Shots(_ context.Context, caller identity.Key, matchID string) (BoardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.lookupLocked(matchID)
	if err != nil {
		return BoardView{}, err
	}
	if !st.Match.IsPlayer(caller) {
		return BoardView{}, domain.ErrNotAPlayer
	}
	return boardView(st.Match.ShotsFor(caller)), nil
}

// Matches lists the match ids for which caller holds a private board.
func (s *Service) Matches(ctx context.Context, caller identity.Key) ([]string, error) {
	return s.boards.For(caller).Keys(ctx)
}

// Active returns the most recently created match.
func (s *Service) Active() (MatchState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.matches[s.active]
	if !ok {
		return MatchState{}, ErrNoActiveMatch
	}
	return *st, nil
}

// Get returns a copy of the match state if present.
func (s *Service) Get(matchID string) (MatchState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.matches[matchID]
	if !ok {
		return MatchState{}, false
	}
	return *st, true
}

func (s *Service) lookupLocked(matchID string) (*MatchState, error) {
	st, ok := s.matches[matchID]
	if !ok {
		return nil, domain.NotFound(matchID)
	}
	return st, nil
}

// emitLocked publishes e while s.mu is held, so subscribers observe events in
// the order the state changes were committed. Sinks must not call back into
// the service.
func (s *Service) emitLocked(ctx context.Context, e events.Event) {
	if e.At.IsZero() {
		e.At = s.now()
	}
	s.sink.Emit(ctx, e)
}
