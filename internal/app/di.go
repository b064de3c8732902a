// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	auditHTTP "github.com/allisson/phiguard/internal/audit/http"
	auditUseCase "github.com/allisson/phiguard/internal/audit/usecase"
	complianceHTTP "github.com/allisson/phiguard/internal/compliance/http"
	complianceUseCase "github.com/allisson/phiguard/internal/compliance/usecase"
	"github.com/allisson/phiguard/internal/config"
	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
	cryptoHTTP "github.com/allisson/phiguard/internal/crypto/http"
	cryptoService "github.com/allisson/phiguard/internal/crypto/service"
	cryptoUseCase "github.com/allisson/phiguard/internal/crypto/usecase"
	"github.com/allisson/phiguard/internal/database"
	detectionHTTP "github.com/allisson/phiguard/internal/detection/http"
	detectionService "github.com/allisson/phiguard/internal/detection/service"
	detectionUseCase "github.com/allisson/phiguard/internal/detection/usecase"
	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
	erasureHTTP "github.com/allisson/phiguard/internal/erasure/http"
	erasureService "github.com/allisson/phiguard/internal/erasure/service"
	erasureUseCase "github.com/allisson/phiguard/internal/erasure/usecase"
	httpServer "github.com/allisson/phiguard/internal/http"
	"github.com/allisson/phiguard/internal/metrics"
)

// Container holds all application dependencies and provides methods to access
// them. It follows the lazy initialization pattern - components are created on
// first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	kmsService     cryptoService.KMSService
	masterSecret   *cryptoDomain.MasterSecret
	envelopeCipher cryptoService.EnvelopeCipher
	hasher         cryptoService.Hasher
	cryptoUseCase  cryptoUseCase.CryptoUseCase

	// Detection
	scanner          *detectionService.Scanner
	detectionLogRepo detectionUseCase.DetectionLogRepository
	detectionUseCase detectionUseCase.DetectionUseCase

	// Audit
	auditEventRepo auditUseCase.AuditEventRepository
	auditUseCase   auditUseCase.AuditUseCase

	// Erasure
	shredder           erasureService.Shredder
	deletionRecordRepo erasureUseCase.DeletionRecordRepository
	erasureUseCase     erasureUseCase.ErasureUseCase

	// Compliance
	complianceSettingRepo complianceUseCase.ComplianceSettingRepository
	complianceUseCase     complianceUseCase.ComplianceUseCase

	// Servers
	httpSrv    *httpServer.Server
	metricsSrv *httpServer.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                        sync.Mutex
	loggerInit                sync.Once
	dbInit                    sync.Once
	txManagerInit             sync.Once
	metricsProviderInit       sync.Once
	businessMetricsInit       sync.Once
	kmsServiceInit            sync.Once
	masterSecretInit          sync.Once
	envelopeCipherInit        sync.Once
	hasherInit                sync.Once
	cryptoUseCaseInit         sync.Once
	scannerInit               sync.Once
	detectionLogRepoInit      sync.Once
	detectionUseCaseInit      sync.Once
	auditEventRepoInit        sync.Once
	auditUseCaseInit          sync.Once
	shredderInit              sync.Once
	deletionRecordRepoInit    sync.Once
	erasureUseCaseInit        sync.Once
	complianceSettingRepoInit sync.Once
	complianceUseCaseInit     sync.Once
	httpServerInit            sync.Once
	metricsServerInit         sync.Once
	initErrors                map[string]error
}

// NewContainer creates a new dependency injection container with the provided
// configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. When metrics are
// disabled a no-op recorder is returned so decorators stay wired.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = bm
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance with the full router assembled.
func (c *Container) HTTPServer() (*httpServer.Server, error) {
	c.httpServerInit.Do(func() {
		srv, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpSrv = srv
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpSrv, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are
// disabled.
func (c *Container) MetricsServer() (*httpServer.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsSrv = httpServer.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsSrv, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpSrv != nil {
		if err := c.httpSrv.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsSrv != nil {
		if err := c.metricsSrv.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	// Master secret material is cleared last.
	if c.masterSecret != nil {
		c.masterSecret.Close()
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*httpServer.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	cryptoUC, err := c.CryptoUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get crypto use case for http server: %w", err)
	}

	detectionUC, err := c.DetectionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get detection use case for http server: %w", err)
	}

	auditUC, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for http server: %w", err)
	}

	erasureUC, err := c.ErasureUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get erasure use case for http server: %w", err)
	}

	complianceUC, err := c.ComplianceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get compliance use case for http server: %w", err)
	}

	defaultMethod, err := erasureDomain.ParseMethod(c.config.ErasureMethod)
	if err != nil {
		return nil, fmt.Errorf("invalid default erasure method: %w", err)
	}

	routerCfg := httpServer.RouterConfig{
		DetectionHandler:  detectionHTTP.NewDetectionHandler(detectionUC, logger),
		CryptoHandler:     cryptoHTTP.NewCryptoHandler(cryptoUC, logger),
		ErasureHandler:    erasureHTTP.NewErasureHandler(erasureUC, defaultMethod, logger),
		AuditEventHandler: auditHTTP.NewAuditEventHandler(auditUC, logger),
		ComplianceHandler: complianceHTTP.NewComplianceHandler(complianceUC, logger),

		AuditRecorder: auditUC,

		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,

		RateLimitEnabled:        c.config.RateLimitEnabled,
		RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
		RateLimitBurst:          c.config.RateLimitBurst,
	}

	if provider, err := c.MetricsProvider(); err == nil && provider != nil {
		routerCfg.MetricsMiddleware = metrics.HTTPMetricsMiddleware(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
	}

	server := httpServer.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(routerCfg)

	return server, nil
}
