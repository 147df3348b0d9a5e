package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndRelease(t *testing.T) {
	s := NewState()

	s.Set("a", "KeyW", true)
	assert.True(t, s.Down("KeyW"))

	s.Set("a", "KeyW", false)
	assert.False(t, s.Down("KeyW"))
	assert.Empty(t, s.Snapshot())
}

func TestSharedKey(t *testing.T) {
	s := NewState()
	s.Set("a", "Space", true)
	s.Set("b", "Space", true)

	s.Set("a", "Space", false)
	assert.True(t, s.Down("Space"), "still held by b")

	s.ReleaseAll("b")
	assert.False(t, s.Down("Space"))
}

func TestReleaseAllOnlyTouchesSource(t *testing.T) {
	s := NewState()
	s.Set("a", "KeyA", true)
	s.Set("a", "KeyD", true)
	s.Set("b", "ArrowUp", true)

	s.ReleaseAll("a")
	assert.Equal(t, map[string]bool{"ArrowUp": true}, toStrings(s.Snapshot()))
}

func TestIgnoresUnboundKey(t *testing.T) {
	s := NewState()
	s.Set("a", "", true)
	assert.Empty(t, s.Snapshot())
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewState()
	s.Set("a", "KeyQ", true)
	snap := s.Snapshot()
	s.Set("a", "KeyQ", false)
	assert.True(t, snap["KeyQ"])
}

func toStrings[K ~string](m map[K]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}
