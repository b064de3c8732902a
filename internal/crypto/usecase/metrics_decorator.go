package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
	"github.com/allisson/phiguard/internal/metrics"
)

// cryptoUseCaseWithMetrics decorates CryptoUseCase with metrics instrumentation.
type cryptoUseCaseWithMetrics struct {
	next    CryptoUseCase
	metrics metrics.BusinessMetrics
}

// NewCryptoUseCaseWithMetrics wraps a CryptoUseCase with metrics recording.
func NewCryptoUseCaseWithMetrics(useCase CryptoUseCase, m metrics.BusinessMetrics) CryptoUseCase {
	return &cryptoUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Encrypt records metrics for envelope encryption operations.
func (c *cryptoUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	plaintext []byte,
) (*cryptoDomain.EncryptedEnvelope, error) {
	start := time.Now()
	envelope, err := c.next.Encrypt(ctx, plaintext)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "crypto", "encrypt", status)
	c.metrics.RecordDuration(ctx, "crypto", "encrypt", time.Since(start), status)

	return envelope, err
}

// Decrypt records metrics for envelope decryption operations.
func (c *cryptoUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	envelope *cryptoDomain.EncryptedEnvelope,
) ([]byte, error) {
	start := time.Now()
	plaintext, err := c.next.Decrypt(ctx, envelope)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "crypto", "decrypt", status)
	c.metrics.RecordDuration(ctx, "crypto", "decrypt", time.Since(start), status)

	return plaintext, err
}

// Hash records metrics for content fingerprint operations.
func (c *cryptoUseCaseWithMetrics) Hash(ctx context.Context, data []byte) string {
	start := time.Now()
	digest := c.next.Hash(ctx, data)

	c.metrics.RecordOperation(ctx, "crypto", "hash", "success")
	c.metrics.RecordDuration(ctx, "crypto", "hash", time.Since(start), "success")

	return digest
}
