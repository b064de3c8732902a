package app

import (
	"errors"
	"fmt"

	auditRepository "github.com/allisson/phiguard/internal/audit/repository"
	auditService "github.com/allisson/phiguard/internal/audit/service"
	auditUseCase "github.com/allisson/phiguard/internal/audit/usecase"
	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
)

// AuditEventRepository returns the audit event repository based on the
// database driver.
func (c *Container) AuditEventRepository() (auditUseCase.AuditEventRepository, error) {
	c.auditEventRepoInit.Do(func() {
		repo, err := c.initAuditEventRepository()
		if err != nil {
			c.initErrors["auditEventRepo"] = err
			return
		}
		c.auditEventRepo = repo
	})
	if storedErr, exists := c.initErrors["auditEventRepo"]; exists {
		return nil, storedErr
	}
	return c.auditEventRepo, nil
}

// AuditUseCase returns the audit use case.
func (c *Container) AuditUseCase() (auditUseCase.AuditUseCase, error) {
	c.auditUseCaseInit.Do(func() {
		useCase, err := c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
			return
		}
		c.auditUseCase = useCase
	})
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}

// initAuditEventRepository creates the audit event repository based on the
// database driver.
func (c *Container) initAuditEventRepository() (auditUseCase.AuditEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit event repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return auditRepository.NewPostgreSQLAuditEventRepository(db), nil
	case "mysql":
		return auditRepository.NewMySQLAuditEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditUseCase creates the audit use case with all its dependencies.
// The detection scanner doubles as the sanitizer for audit-bound content.
// Without a master secret the trail is written unsigned rather than not at
// all; every other master secret failure aborts boot.
func (c *Container) initAuditUseCase() (auditUseCase.AuditUseCase, error) {
	auditEventRepo, err := c.AuditEventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit event repository for audit use case: %w", err)
	}

	var signingKey []byte
	secret, err := c.MasterSecret()
	switch {
	case err == nil:
		signingKey = secret.Bytes()
	case errors.Is(err, cryptoDomain.ErrMasterSecretNotSet):
		signingKey = nil
	default:
		return nil, fmt.Errorf("failed to get master secret for audit use case: %w", err)
	}

	useCase, err := auditUseCase.NewAuditUseCase(
		auditEventRepo,
		c.Scanner(),
		auditService.NewSigner(),
		signingKey,
		c.config.AuditRetention,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit use case: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for audit use case: %w", err)
	}

	return auditUseCase.NewAuditUseCaseWithMetrics(useCase, bm), nil
}
