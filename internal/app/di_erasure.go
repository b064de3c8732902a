package app

import (
	"fmt"

	erasureRepository "github.com/allisson/phiguard/internal/erasure/repository"
	erasureService "github.com/allisson/phiguard/internal/erasure/service"
	erasureUseCase "github.com/allisson/phiguard/internal/erasure/usecase"
)

// Shredder returns the file shredder service.
func (c *Container) Shredder() erasureService.Shredder {
	c.shredderInit.Do(func() {
		c.shredder = erasureService.NewFileShredder(c.Hasher())
	})
	return c.shredder
}

// DeletionRecordRepository returns the deletion record repository based on
// the database driver.
func (c *Container) DeletionRecordRepository() (erasureUseCase.DeletionRecordRepository, error) {
	c.deletionRecordRepoInit.Do(func() {
		repo, err := c.initDeletionRecordRepository()
		if err != nil {
			c.initErrors["deletionRecordRepo"] = err
			return
		}
		c.deletionRecordRepo = repo
	})
	if storedErr, exists := c.initErrors["deletionRecordRepo"]; exists {
		return nil, storedErr
	}
	return c.deletionRecordRepo, nil
}

// ErasureUseCase returns the erasure use case.
func (c *Container) ErasureUseCase() (erasureUseCase.ErasureUseCase, error) {
	c.erasureUseCaseInit.Do(func() {
		useCase, err := c.initErasureUseCase()
		if err != nil {
			c.initErrors["erasureUseCase"] = err
			return
		}
		c.erasureUseCase = useCase
	})
	if storedErr, exists := c.initErrors["erasureUseCase"]; exists {
		return nil, storedErr
	}
	return c.erasureUseCase, nil
}

// initDeletionRecordRepository creates the deletion record repository based
// on the database driver.
func (c *Container) initDeletionRecordRepository() (erasureUseCase.DeletionRecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for deletion record repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return erasureRepository.NewPostgreSQLDeletionRecordRepository(db), nil
	case "mysql":
		return erasureRepository.NewMySQLDeletionRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initErasureUseCase creates the erasure use case with all its dependencies.
func (c *Container) initErasureUseCase() (erasureUseCase.ErasureUseCase, error) {
	deletionRecordRepo, err := c.DeletionRecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get deletion record repository for erasure use case: %w", err)
	}

	auditRecorder, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for erasure use case: %w", err)
	}

	useCase := erasureUseCase.NewErasureUseCase(c.Shredder(), deletionRecordRepo, auditRecorder)

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for erasure use case: %w", err)
	}

	return erasureUseCase.NewErasureUseCaseWithMetrics(useCase, bm), nil
}
