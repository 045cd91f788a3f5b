package buildwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionReportsLaunchOnce(t *testing.T) {
	s := NewSession("MyMod", "Launch.log")
	require.NotEmpty(t, s.ID)

	ev, ok := s.Observe("")
	require.True(t, ok)
	assert.Equal(t, EventLaunched, ev)

	_, ok = s.Observe("Log: Log file open\n")
	assert.False(t, ok)

	_, done := s.Done()
	assert.False(t, done)
}

func TestSessionTerminalOnce(t *testing.T) {
	s := NewSession("MyMod", "Launch.log")
	s.Observe("")

	ev, ok := s.Observe(startLine + "----MyMod\n" + finishLine)
	require.True(t, ok)
	assert.Equal(t, EventSucceeded, ev)

	_, ok = s.Observe(startLine)
	assert.False(t, ok)
	_, ok = s.Observe("")
	assert.False(t, ok)

	last, done := s.Done()
	assert.True(t, done)
	assert.Equal(t, EventSucceeded, last)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := NewSession("MyMod", "Launch.log")
	b := NewSession("MyMod", "Launch.log")
	assert.NotEqual(t, a.ID, b.ID)

	_, ok := a.Observe("")
	require.True(t, ok)
	ev, ok := b.Observe("")
	require.True(t, ok)
	assert.Equal(t, EventLaunched, ev)
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "launched", EventLaunched.String())
	assert.Equal(t, "succeeded", EventSucceeded.String())
	assert.Equal(t, "module-not-built", EventModuleNotBuilt.String())
	assert.Equal(t, "failed", EventFailed.String())
	assert.False(t, EventLaunched.Terminal())
	assert.True(t, EventFailed.Terminal())
}
