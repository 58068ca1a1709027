// Package ids issues note and card identifiers for a single package build.
package ids

import "time"

// Generator hands out strictly increasing ids seeded from the clock in milliseconds.
// A Generator belongs to one build and is not safe for concurrent use.
type Generator struct {
	now      func() time.Time
	last     int64
	reserved map[int64]struct{}
}

// NewGenerator returns a Generator reading the time from now, or from time.Now when nil.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now, reserved: make(map[int64]struct{})}
}

// Reserve marks caller-chosen ids, such as model and deck ids, so Next never returns them.
func (g *Generator) Reserve(ids ...int64) {
	for _, id := range ids {
		g.reserved[id] = struct{}{}
	}
}

// Next returns max(last+1, now in milliseconds), skipping reserved ids.
func (g *Generator) Next() int64 {
	id := g.last + 1
	if floor := g.now().UnixMilli(); floor > id {
		id = floor
	}
	for {
		if _, taken := g.reserved[id]; !taken {
			break
		}
		id++
	}
	g.last = id
	return id
}
