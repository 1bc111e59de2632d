// Package events carries public match events to logs and live subscribers.
// Events never contain private board data.
package events

import (
	"context"
	"time"

	"github.com/jaminalder/codex-battleship/internal/domain"
	"github.com/rs/zerolog"
)

type Kind string

const (
	MatchCreated Kind = "match_created"
	ShipsPlaced  Kind = "ships_placed"
	ShotProposed Kind = "shot_proposed"
	ShotFired    Kind = "shot_fired"
	Winner       Kind = "winner"
	MatchEnded   Kind = "match_ended"
)

// Event is one public notification about a match.
type Event struct {
	Kind    Kind               `json:"kind"`
	MatchID string             `json:"match_id"`
	Player  string             `json:"player,omitempty"`
	Coord   *domain.Coordinate `json:"coord,omitempty"`
	Result  domain.Outcome     `json:"result,omitempty"`
	At      time.Time          `json:"at"`
}

// Sink receives events. Emit is fire-and-forget.
type Sink interface {
	Emit(ctx context.Context, e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event)

func (f SinkFunc) Emit(ctx context.Context, e Event) { f(ctx, e) }

// Multi forwards every event to each sink in order.
type Multi []Sink

func (m Multi) Emit(ctx context.Context, e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(ctx, e)
		}
	}
}

// LogSink writes events as structured log lines. The request logger in ctx is
// preferred so events carry the request id.
type LogSink struct {
	Logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) LogSink { return LogSink{Logger: logger} }

func (s LogSink) Emit(ctx context.Context, e Event) {
	logger := &s.Logger
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		logger = l
	}
	ev := logger.Info().
		Str("event", string(e.Kind)).
		Str("match_id", e.MatchID)
	if e.Player != "" {
		ev = ev.Str("player", e.Player)
	}
	if e.Coord != nil {
		ev = ev.Int("x", e.Coord.X).Int("y", e.Coord.Y)
	}
	if e.Result != "" {
		ev = ev.Str("result", string(e.Result))
	}
	ev.Msg("match event")
}
