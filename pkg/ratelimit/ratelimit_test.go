package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestGovernor(max int) (*Governor, *time.Time) {
	current := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	g := New(max)
	g.now = func() time.Time { return current }
	return g, &current
}

func TestGovernor_AllowsUpToLimit(t *testing.T) {
	g, _ := newTestGovernor(3)

	for i := 0; i < 3; i++ {
		assert.True(t, g.Allowed(42), "request %d should be admitted", i+1)
	}
	assert.False(t, g.Allowed(42), "fourth request inside the window should be rejected")
}

func TestGovernor_WindowSlides(t *testing.T) {
	g, current := newTestGovernor(2)

	assert.True(t, g.Allowed(42))
	assert.True(t, g.Allowed(42))
	assert.False(t, g.Allowed(42))

	*current = current.Add(61 * time.Second)

	assert.True(t, g.Allowed(42))
	assert.Equal(t, 0, g.WaitSeconds(7), "untouched user has nothing to wait for")
}

func TestGovernor_UsersAreIndependent(t *testing.T) {
	g, _ := newTestGovernor(1)

	assert.True(t, g.Allowed(1))
	assert.False(t, g.Allowed(1))
	assert.True(t, g.Allowed(2))
}

func TestGovernor_WaitSeconds(t *testing.T) {
	g, current := newTestGovernor(1)

	assert.True(t, g.Allowed(42))
	assert.False(t, g.Allowed(42))

	wait := g.WaitSeconds(42)
	assert.Equal(t, 60, wait)

	*current = current.Add(45 * time.Second)
	assert.Equal(t, 15, g.WaitSeconds(42))

	*current = current.Add(20 * time.Second)
	assert.Equal(t, 0, g.WaitSeconds(42))
	assert.True(t, g.Allowed(42))
}
