package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	t.Run("test_set_then_get", func(t *testing.T) {
		s := NewStore[string]()
		s.Set("k", "v", time.Minute)

		got, ok := s.Get("k")
		assert.True(t, ok, "entry should be present immediately after set")
		assert.Equal(t, "v", got, "entry should hold the stored value")
	})

	t.Run("test_miss", func(t *testing.T) {
		s := NewStore[string]()
		got, ok := s.Get("nope")
		assert.False(t, ok, "missing key should miss")
		assert.Equal(t, "", got, "missing key should return the zero value")
	})

	t.Run("test_lazy_expiry", func(t *testing.T) {
		s := NewStore[int]()
		now := time.Now()
		s.SetClock(func() time.Time { return now })

		s.Set("k", 42, 30*time.Minute)
		assert.Equal(t, 1, s.Len(), "entry should be physically present")

		now = now.Add(30 * time.Minute)
		_, ok := s.Get("k")
		assert.False(t, ok, "entry at exactly its TTL should be expired")
		assert.Equal(t, 0, s.Len(), "expired entry should be deleted on read")
	})

	t.Run("test_unexpired_just_before_ttl", func(t *testing.T) {
		s := NewStore[int]()
		now := time.Now()
		s.SetClock(func() time.Time { return now })

		s.Set("k", 42, 30*time.Minute)
		now = now.Add(30*time.Minute - time.Second)

		got, ok := s.Get("k")
		assert.True(t, ok, "entry just before its TTL should still be valid")
		assert.Equal(t, 42, got, "value should survive until expiry")
	})

	t.Run("test_set_overwrites_and_restamps", func(t *testing.T) {
		s := NewStore[string]()
		now := time.Now()
		s.SetClock(func() time.Time { return now })

		s.Set("k", "old", time.Minute)
		now = now.Add(50 * time.Second)
		s.Set("k", "new", time.Minute)
		now = now.Add(30 * time.Second)

		got, ok := s.Get("k")
		assert.True(t, ok, "overwrite should restamp the entry's timestamp")
		assert.Equal(t, "new", got, "overwrite should replace the value")
	})

	t.Run("test_delete_prefix_respects_boundaries", func(t *testing.T) {
		s := NewStore[int]()
		s.Set("a/r1@tree:main", 1, time.Minute)
		s.Set("a/r1@file:main:x.go", 2, time.Minute)
		s.Set("a/r10@tree:main", 3, time.Minute)
		s.Set("b/r1@tree:main", 4, time.Minute)

		removed := s.DeletePrefix("a/r1@")
		assert.Equal(t, 2, removed, "only a/r1 entries should be removed")

		_, ok := s.Get("a/r10@tree:main")
		assert.True(t, ok, "a/r10 shares a substring but must survive")
		_, ok = s.Get("b/r1@tree:main")
		assert.True(t, ok, "b/r1 must survive")
	})

	t.Run("test_clear", func(t *testing.T) {
		s := NewStore[int]()
		s.Set("a", 1, time.Minute)
		s.Set("b", 2, time.Minute)

		s.Clear()
		assert.Equal(t, 0, s.Len(), "clear should remove everything")
	})
}
