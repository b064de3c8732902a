package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Hasher_Hash(t *testing.T) {
	hasher := NewHasher()

	t.Run("known digest", func(t *testing.T) {
		// sha256("") is a fixed, well-known value.
		got := hasher.Hash([]byte{})
		assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", got)
	})

	t.Run("deterministic", func(t *testing.T) {
		a := hasher.Hash([]byte("medical record 42"))
		b := hasher.Hash([]byte("medical record 42"))
		assert.Equal(t, a, b)
		assert.Len(t, a, 64)
	})

	t.Run("different input different digest", func(t *testing.T) {
		a := hasher.Hash([]byte("record a"))
		b := hasher.Hash([]byte("record b"))
		assert.NotEqual(t, a, b)
	})

	t.Run("reader matches byte digest", func(t *testing.T) {
		content := []byte("diagnosis: E11.9")
		got, err := hasher.HashReader(bytes.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, hasher.Hash(content), got)
	})
}
