package kvstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"GameHub/services/kvstore"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	kv := kvstore.NewMemoryStore()

	t.Run("Get on a missing key reports absence", func(t *testing.T) {
		var out []string
		found, err := kv.Get("missing", &out)
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, out)
	})

	t.Run("Set then Get returns the value", func(t *testing.T) {
		assert.NoError(t, kv.Set("list", []string{"a", "b"}))

		var out []string
		found, err := kv.Get("list", &out)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []string{"a", "b"}, out)
	})

	t.Run("Set bumps the version", func(t *testing.T) {
		before, err := kv.Version("list")
		assert.NoError(t, err)

		assert.NoError(t, kv.Set("list", []string{"c"}))

		after, err := kv.Version("list")
		assert.NoError(t, err)
		assert.Equal(t, before+1, after)
	})

	t.Run("Delete removes the key", func(t *testing.T) {
		assert.NoError(t, kv.Delete("list"))

		var out []string
		found, err := kv.Get("list", &out)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestMemoryStoreCompareAndSwap(t *testing.T) {
	kv := kvstore.NewMemoryStore()

	t.Run("CAS on a fresh key with expected zero succeeds", func(t *testing.T) {
		next, err := kv.CompareAndSwap("key", "v1", 0)
		assert.NoError(t, err)
		assert.Equal(t, uint64(1), next)
	})

	t.Run("CAS with the current version succeeds", func(t *testing.T) {
		next, err := kv.CompareAndSwap("key", "v2", 1)
		assert.NoError(t, err)
		assert.Equal(t, uint64(2), next)
	})

	t.Run("CAS with a stale version fails with ErrConflict", func(t *testing.T) {
		_, err := kv.CompareAndSwap("key", "v3", 1)
		assert.ErrorIs(t, err, kvstore.ErrConflict)

		// The losing write must not be visible.
		var out string
		found, err := kv.Get("key", &out)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v2", out)
	})
}

func TestMemoryStoreKeys(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	assert.NoError(t, kv.Set("friends_a", 1))
	assert.NoError(t, kv.Set("friends_b", 2))
	assert.NoError(t, kv.Set("games", 3))

	keys, err := kv.Keys("friends_")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"friends_a", "friends_b"}, keys)
}
