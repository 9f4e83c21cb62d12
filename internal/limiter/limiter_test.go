package limiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(rps float64, burst int) (*Limiter, *time.Time) {
	l := New(rps, burst)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_Allow_Burst(t *testing.T) {
	l, now := newTestLimiter(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))

	// other clients have their own bucket
	assert.True(t, l.Allow("10.0.0.2"))

	*now = now.Add(time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
}

func TestLimiter_Sweep(t *testing.T) {
	l, now := newTestLimiter(1, 1)

	l.Allow("old")
	*now = now.Add(2 * time.Minute)
	l.Allow("fresh")

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 1, l.Sweep(time.Minute))
	assert.Equal(t, 1, l.Len())

	// a swept client starts with a full bucket again
	l.Allow("fresh")
	assert.True(t, l.Allow("old"))
}
