// Package service implements the tamper-evidence layer of the audit trail:
// per-event HMAC-SHA256 signatures keyed from the engine's master secret.
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"io"

	"golang.org/x/crypto/hkdf"

	auditDomain "github.com/allisson/phiguard/internal/audit/domain"
	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
	apperrors "github.com/allisson/phiguard/internal/errors"
)

// signingKeyInfo versions the key derivation so the scheme can be rotated
// without reusing old signing keys.
const signingKeyInfo = "audit-event-signing-v1"

// signingKeySize is the derived HMAC key length in bytes.
const signingKeySize = 32

// Signer signs and verifies audit events. The key is the raw master secret;
// a dedicated signing key is derived per call so encryption and signing never
// share key material.
type Signer interface {
	// Sign returns the HMAC-SHA256 signature over the canonical form of the
	// event. The Signature field itself is not part of the canonical form.
	Sign(key []byte, event *auditDomain.AuditEvent) ([]byte, error)

	// Verify recomputes the signature and compares it in constant time.
	// Returns ErrSignatureInvalid when the event does not match.
	Verify(key []byte, event *auditDomain.AuditEvent) error
}

type hmacSigner struct{}

// NewSigner creates an HMAC-SHA256 signer with HKDF-SHA256 key derivation.
func NewSigner() Signer {
	return &hmacSigner{}
}

// deriveSigningKey stretches the master secret into a dedicated signing key.
func (s *hmacSigner) deriveSigningKey(key []byte) ([]byte, error) {
	kdf := hkdf.New(sha256.New, key, nil, []byte(signingKeyInfo))

	signingKey := make([]byte, signingKeySize)
	if _, err := io.ReadFull(kdf, signingKey); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive audit signing key")
	}

	return signingKey, nil
}

// canonicalize produces the byte form of the event that gets signed.
// Variable-length fields are length-prefixed so adjacent fields cannot be
// shifted into each other without changing the signature.
func (s *hmacSigner) canonicalize(event *auditDomain.AuditEvent) ([]byte, error) {
	buf := make([]byte, 0, 1024)

	buf = append(buf, event.ID[:]...)
	buf = appendLengthPrefixed(buf, []byte(event.ActorID))
	buf = appendLengthPrefixed(buf, []byte(event.OrganizationID))
	buf = appendLengthPrefixed(buf, []byte(event.Action))
	buf = appendLengthPrefixed(buf, []byte(event.Resource))
	buf = appendLengthPrefixed(buf, []byte(event.ResourceID))

	if event.Details != nil {
		detailsJSON, err := json.Marshal(event.Details)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal audit event details")
		}
		buf = appendLengthPrefixed(buf, detailsJSON)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	if event.PHIAccessed {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}

	buf = appendLengthPrefixed(buf, []byte(event.EventKind))
	buf = appendLengthPrefixed(buf, []byte(event.Justification))
	buf = appendLengthPrefixed(buf, []byte(event.SessionID))
	buf = appendLengthPrefixed(buf, []byte(event.IPAddress))
	buf = appendLengthPrefixed(buf, []byte(event.UserAgent))
	buf = appendLengthPrefixed(buf, []byte(event.Severity))

	if event.Encrypted {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}

	buf = binary.BigEndian.AppendUint64(buf, uint64(event.RetentionUntil.UnixNano()))
	buf = binary.BigEndian.AppendUint64(buf, uint64(event.CreatedAt.UnixNano()))

	return buf, nil
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

// Sign generates the HMAC-SHA256 signature for the event.
func (s *hmacSigner) Sign(key []byte, event *auditDomain.AuditEvent) ([]byte, error) {
	signingKey, err := s.deriveSigningKey(key)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(signingKey)

	canonical, err := s.canonicalize(event)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify checks the event against its stored signature.
func (s *hmacSigner) Verify(key []byte, event *auditDomain.AuditEvent) error {
	expected, err := s.Sign(key, event)
	if err != nil {
		return err
	}

	if !hmac.Equal(event.Signature, expected) {
		return auditDomain.ErrSignatureInvalid
	}

	return nil
}
