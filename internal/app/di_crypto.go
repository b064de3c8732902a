package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
	cryptoService "github.com/allisson/phiguard/internal/crypto/service"
	cryptoUseCase "github.com/allisson/phiguard/internal/crypto/usecase"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// EnvelopeCipher returns the envelope cipher service.
func (c *Container) EnvelopeCipher() cryptoService.EnvelopeCipher {
	c.envelopeCipherInit.Do(func() {
		c.envelopeCipher = cryptoService.NewEnvelopeCipher()
	})
	return c.envelopeCipher
}

// Hasher returns the content fingerprint service.
func (c *Container) Hasher() cryptoService.Hasher {
	c.hasherInit.Do(func() {
		c.hasher = cryptoService.NewHasher()
	})
	return c.hasher
}

// MasterSecret returns the master secret loaded from environment variables.
// Returns cryptoDomain.ErrMasterSecretNotSet when no secret is configured;
// the engine still boots in that case with envelope encryption disabled.
func (c *Container) MasterSecret() (*cryptoDomain.MasterSecret, error) {
	c.masterSecretInit.Do(func() {
		secret, err := c.initMasterSecret()
		if err != nil {
			c.initErrors["masterSecret"] = err
			return
		}
		c.masterSecret = secret
	})
	if storedErr, exists := c.initErrors["masterSecret"]; exists {
		return nil, storedErr
	}
	return c.masterSecret, nil
}

// MasterSecretConfigured reports whether the engine booted with a usable
// master secret. Used by the compliance posture checks.
func (c *Container) MasterSecretConfigured() bool {
	secret, err := c.MasterSecret()
	return err == nil && secret != nil
}

// CryptoUseCase returns the crypto use case. When no master secret is
// configured, a fail-closed use case is installed so the rest of the API
// stays available.
func (c *Container) CryptoUseCase() (cryptoUseCase.CryptoUseCase, error) {
	c.cryptoUseCaseInit.Do(func() {
		useCase, err := c.initCryptoUseCase()
		if err != nil {
			c.initErrors["cryptoUseCase"] = err
			return
		}
		c.cryptoUseCase = useCase
	})
	if storedErr, exists := c.initErrors["cryptoUseCase"]; exists {
		return nil, storedErr
	}
	return c.cryptoUseCase, nil
}

// initMasterSecret loads the master secret, opening a KMS keeper when the
// secret comes KMS-wrapped.
func (c *Container) initMasterSecret() (*cryptoDomain.MasterSecret, error) {
	ctx := context.Background()

	var keeper cryptoDomain.KMSKeeper
	if c.config.KMSKeyURI != "" {
		k, err := c.KMSService().OpenKeeper(ctx, c.config.KMSKeyURI)
		if err != nil {
			return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
		}
		defer func() { _ = k.Close() }()
		keeper = k
	}

	return cryptoDomain.LoadMasterSecretFromEnv(ctx, keeper)
}

// initCryptoUseCase creates the crypto use case with all its dependencies.
func (c *Container) initCryptoUseCase() (cryptoUseCase.CryptoUseCase, error) {
	logger := c.Logger()

	secret, err := c.MasterSecret()
	switch {
	case errors.Is(err, cryptoDomain.ErrMasterSecretNotSet):
		logger.Warn("no master secret configured, envelope encryption disabled",
			slog.Any("error", err))
		return c.withCryptoMetrics(cryptoUseCase.NewDisabledCryptoUseCase(c.Hasher()))
	case err != nil:
		// A present but unusable secret is a hard startup failure.
		return nil, fmt.Errorf("failed to load master secret: %w", err)
	}

	useCase, err := cryptoUseCase.NewCryptoUseCase(c.EnvelopeCipher(), c.Hasher(), secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto use case: %w", err)
	}

	return c.withCryptoMetrics(useCase)
}

// withCryptoMetrics wraps a crypto use case with the business metrics decorator.
func (c *Container) withCryptoMetrics(useCase cryptoUseCase.CryptoUseCase) (cryptoUseCase.CryptoUseCase, error) {
	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for crypto use case: %w", err)
	}
	return cryptoUseCase.NewCryptoUseCaseWithMetrics(useCase, bm), nil
}
