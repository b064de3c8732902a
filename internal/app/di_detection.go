package app

import (
	"fmt"

	detectionRepository "github.com/allisson/phiguard/internal/detection/repository"
	detectionService "github.com/allisson/phiguard/internal/detection/service"
	detectionUseCase "github.com/allisson/phiguard/internal/detection/usecase"
)

// Scanner returns the detection scanner configured with the quarantine
// threshold.
func (c *Container) Scanner() *detectionService.Scanner {
	c.scannerInit.Do(func() {
		c.scanner = detectionService.NewScanner(c.config.QuarantineThreshold)
	})
	return c.scanner
}

// DetectionLogRepository returns the detection log repository based on the
// database driver.
func (c *Container) DetectionLogRepository() (detectionUseCase.DetectionLogRepository, error) {
	c.detectionLogRepoInit.Do(func() {
		repo, err := c.initDetectionLogRepository()
		if err != nil {
			c.initErrors["detectionLogRepo"] = err
			return
		}
		c.detectionLogRepo = repo
	})
	if storedErr, exists := c.initErrors["detectionLogRepo"]; exists {
		return nil, storedErr
	}
	return c.detectionLogRepo, nil
}

// DetectionUseCase returns the detection use case.
func (c *Container) DetectionUseCase() (detectionUseCase.DetectionUseCase, error) {
	c.detectionUseCaseInit.Do(func() {
		useCase, err := c.initDetectionUseCase()
		if err != nil {
			c.initErrors["detectionUseCase"] = err
			return
		}
		c.detectionUseCase = useCase
	})
	if storedErr, exists := c.initErrors["detectionUseCase"]; exists {
		return nil, storedErr
	}
	return c.detectionUseCase, nil
}

// initDetectionLogRepository creates the detection log repository based on
// the database driver.
func (c *Container) initDetectionLogRepository() (detectionUseCase.DetectionLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for detection log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return detectionRepository.NewPostgreSQLDetectionLogRepository(db), nil
	case "mysql":
		return detectionRepository.NewMySQLDetectionLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDetectionUseCase creates the detection use case with all its dependencies.
func (c *Container) initDetectionUseCase() (detectionUseCase.DetectionUseCase, error) {
	detectionLogRepo, err := c.DetectionLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get detection log repository for detection use case: %w", err)
	}

	auditRecorder, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for detection use case: %w", err)
	}

	useCase := detectionUseCase.NewDetectionUseCase(c.Scanner(), detectionLogRepo, auditRecorder)

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for detection use case: %w", err)
	}

	return detectionUseCase.NewDetectionUseCaseWithMetrics(useCase, bm), nil
}
