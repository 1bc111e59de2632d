package app

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator issues match identifiers.
type IDGenerator interface {
	NextID() string
}

// ClockIDs issues "match-<unix-ms>-<nonce>" ids. The nonce increases on every
// call, so ids stay unique when the clock does not move.
type ClockIDs struct {
	mu    sync.Mutex
	nonce uint64
	now   func() time.Time
}

func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

func (g *ClockIDs) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nonce++
	return fmt.Sprintf("match-%d-%d", g.now().UnixMilli(), g.nonce)
}
