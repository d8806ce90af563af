// Package idgen produces comment and reply identifiers. Ids are decimal
// millisecond timestamps bumped under a mutex, so they stay unique and
// sortable even when two creations land on the same clock tick.
package idgen

import (
	"strconv"
	"sync"
	"time"
)

// Generator issues strictly increasing string identifiers
type Generator struct {
	mu   sync.Mutex
	last int64
}

// New creates a Generator
func New() *Generator {
	return &Generator{}
}

// Next returns the next identifier. Successive calls never return the
// same value, regardless of clock resolution.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now

	return strconv.FormatInt(now, 10)
}
