package ids

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNextIsStrictlyIncreasing(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	gen := NewGenerator(fixedClock(start))

	first := gen.Next()
	assert.Equal(t, start.UnixMilli(), first)

	prev := first
	for i := 0; i < 1000; i++ {
		id := gen.Next()
		require.Greater(t, id, prev)
		prev = id
	}
	assert.Equal(t, first+1000, prev)
}

func TestNextFollowsTheClock(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	gen := NewGenerator(func() time.Time { return now })

	assert.Equal(t, int64(1_700_000_000_000), gen.Next())
	now = now.Add(time.Second)
	assert.Equal(t, int64(1_700_000_001_000), gen.Next())

	// A clock going backwards never produces a repeat.
	now = now.Add(-time.Hour)
	assert.Equal(t, int64(1_700_000_001_001), gen.Next())
}

func TestNextSkipsReserved(t *testing.T) {
	gen := NewGenerator(fixedClock(time.UnixMilli(100)))
	gen.Reserve(100, 101, 103)

	assert.Equal(t, int64(102), gen.Next())
	assert.Equal(t, int64(104), gen.Next())
}

func TestGeneratorsAreIndependent(t *testing.T) {
	clock := fixedClock(time.UnixMilli(5000))
	a := NewGenerator(clock)
	b := NewGenerator(clock)

	a.Next()
	a.Next()
	assert.Equal(t, int64(5000), b.Next())
}
