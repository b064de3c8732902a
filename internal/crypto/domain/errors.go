package domain

import (
	"github.com/allisson/phiguard/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrAuthenticationFailed indicates an AEAD authentication failure.
	//
	// This error can occur due to:
	//   - Wrong master secret used
	//   - Ciphertext or authentication tag has been tampered with
	//   - Nonce or salt does not match the one used during encryption
	//
	// For security reasons, the specific cause is not disclosed to prevent
	// information leakage that could aid attackers. Never retried
	// automatically.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrAuthentication, "envelope authentication failed")

	// ErrInvalidEnvelope indicates an envelope with missing or wrongly sized
	// fields. Returned before any decryption is attempted.
	ErrInvalidEnvelope = errors.Wrap(errors.ErrPrecondition, "malformed encrypted envelope")

	// ErrMasterSecretNotSet indicates no master secret was configured.
	ErrMasterSecretNotSet = errors.Wrap(errors.ErrPrecondition, "master secret not configured")

	// ErrMasterSecretTooShort indicates the configured master secret is below
	// the minimum length.
	ErrMasterSecretTooShort = errors.Wrap(errors.ErrInvalidInput, "master secret too short")

	// ErrInvalidMasterSecretBase64 indicates the master secret could not be
	// base64-decoded.
	ErrInvalidMasterSecretBase64 = errors.Wrap(errors.ErrInvalidInput, "master secret is not valid base64")
)
