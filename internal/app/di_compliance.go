package app

import (
	"fmt"

	complianceRepository "github.com/allisson/phiguard/internal/compliance/repository"
	complianceUseCase "github.com/allisson/phiguard/internal/compliance/usecase"
)

// ComplianceSettingRepository returns the compliance setting repository based
// on the database driver.
func (c *Container) ComplianceSettingRepository() (complianceUseCase.ComplianceSettingRepository, error) {
	c.complianceSettingRepoInit.Do(func() {
		repo, err := c.initComplianceSettingRepository()
		if err != nil {
			c.initErrors["complianceSettingRepo"] = err
			return
		}
		c.complianceSettingRepo = repo
	})
	if storedErr, exists := c.initErrors["complianceSettingRepo"]; exists {
		return nil, storedErr
	}
	return c.complianceSettingRepo, nil
}

// ComplianceUseCase returns the compliance use case.
func (c *Container) ComplianceUseCase() (complianceUseCase.ComplianceUseCase, error) {
	c.complianceUseCaseInit.Do(func() {
		useCase, err := c.initComplianceUseCase()
		if err != nil {
			c.initErrors["complianceUseCase"] = err
			return
		}
		c.complianceUseCase = useCase
	})
	if storedErr, exists := c.initErrors["complianceUseCase"]; exists {
		return nil, storedErr
	}
	return c.complianceUseCase, nil
}

// initComplianceSettingRepository creates the compliance setting repository
// based on the database driver.
func (c *Container) initComplianceSettingRepository() (complianceUseCase.ComplianceSettingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for compliance setting repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return complianceRepository.NewPostgreSQLComplianceSettingRepository(db), nil
	case "mysql":
		return complianceRepository.NewMySQLComplianceSettingRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initComplianceUseCase creates the compliance use case with all its
// dependencies. The audit event repository doubles as the audit counter.
func (c *Container) initComplianceUseCase() (complianceUseCase.ComplianceUseCase, error) {
	settingRepo, err := c.ComplianceSettingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get compliance setting repository for compliance use case: %w", err)
	}

	auditCounter, err := c.AuditEventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit event repository for compliance use case: %w", err)
	}

	useCase := complianceUseCase.NewComplianceUseCase(
		settingRepo,
		auditCounter,
		c.config.AuditRetention,
		c.MasterSecretConfigured(),
	)

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for compliance use case: %w", err)
	}

	return complianceUseCase.NewComplianceUseCaseWithMetrics(useCase, bm), nil
}
