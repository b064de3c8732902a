package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
)

func newTestSecret(t *testing.T) *cryptoDomain.MasterSecret {
	t.Helper()
	raw := make([]byte, 32)
	_, err := rand.Read(raw)
	require.NoError(t, err)
	secret, err := cryptoDomain.NewMasterSecret(raw)
	require.NoError(t, err)
	return secret
}

func TestAESGCMEnvelopeCipher_Encrypt(t *testing.T) {
	cipher := NewEnvelopeCipher()
	secret := newTestSecret(t)

	t.Run("produces a well-formed envelope", func(t *testing.T) {
		envelope, err := cipher.Encrypt([]byte("patient record"), secret)
		require.NoError(t, err)

		assert.NoError(t, envelope.Validate())
		assert.Len(t, envelope.Salt, cryptoDomain.SaltSize)
		assert.Len(t, envelope.Nonce, cryptoDomain.NonceSize)
		assert.Len(t, envelope.AuthTag, cryptoDomain.AuthTagSize)
		assert.Len(t, envelope.Ciphertext, len("patient record"))
	})

	t.Run("salt and nonce are fresh per call", func(t *testing.T) {
		a, err := cipher.Encrypt([]byte("same plaintext"), secret)
		require.NoError(t, err)
		b, err := cipher.Encrypt([]byte("same plaintext"), secret)
		require.NoError(t, err)

		assert.NotEqual(t, a.Salt, b.Salt)
		assert.NotEqual(t, a.Nonce, b.Nonce)
		assert.NotEqual(t, a.Ciphertext, b.Ciphertext)
	})

	t.Run("empty plaintext is legal", func(t *testing.T) {
		envelope, err := cipher.Encrypt([]byte{}, secret)
		require.NoError(t, err)
		assert.NoError(t, envelope.Validate())
		assert.Empty(t, envelope.Ciphertext)
	})

	t.Run("nil master secret", func(t *testing.T) {
		_, err := cipher.Encrypt([]byte("x"), nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrMasterSecretNotSet)
	})
}

func TestAESGCMEnvelopeCipher_Decrypt(t *testing.T) {
	cipher := NewEnvelopeCipher()
	secret := newTestSecret(t)

	t.Run("round trip", func(t *testing.T) {
		plaintext := []byte("SSN: 123-45-6789")
		envelope, err := cipher.Encrypt(plaintext, secret)
		require.NoError(t, err)

		decrypted, err := cipher.Decrypt(envelope, secret)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("flipped ciphertext bit fails authentication", func(t *testing.T) {
		envelope, err := cipher.Encrypt([]byte("sensitive"), secret)
		require.NoError(t, err)

		envelope.Ciphertext[0] ^= 0x01
		plaintext, err := cipher.Decrypt(envelope, secret)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
		assert.Nil(t, plaintext)
	})

	t.Run("flipped auth tag bit fails authentication", func(t *testing.T) {
		envelope, err := cipher.Encrypt([]byte("sensitive"), secret)
		require.NoError(t, err)

		envelope.AuthTag[0] ^= 0x01
		plaintext, err := cipher.Decrypt(envelope, secret)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
		assert.Nil(t, plaintext)
	})

	t.Run("wrong master secret fails authentication", func(t *testing.T) {
		envelope, err := cipher.Encrypt([]byte("sensitive"), secret)
		require.NoError(t, err)

		other := newTestSecret(t)
		plaintext, err := cipher.Decrypt(envelope, other)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
		assert.Nil(t, plaintext)
	})

	t.Run("malformed envelope is rejected before decryption", func(t *testing.T) {
		envelope, err := cipher.Encrypt([]byte("sensitive"), secret)
		require.NoError(t, err)

		envelope.Salt = envelope.Salt[:16]
		plaintext, err := cipher.Decrypt(envelope, secret)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEnvelope)
		assert.Nil(t, plaintext)
	})

	t.Run("nil envelope is rejected", func(t *testing.T) {
		_, err := cipher.Decrypt(nil, secret)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidEnvelope)
	})
}
