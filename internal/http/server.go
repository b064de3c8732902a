// Package http provides the HTTP server, router assembly and shared
// middleware for the engine's API surface.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/allisson/phiguard/internal/audit/http"
	complianceHTTP "github.com/allisson/phiguard/internal/compliance/http"
	cryptoHTTP "github.com/allisson/phiguard/internal/crypto/http"
	detectionHTTP "github.com/allisson/phiguard/internal/detection/http"
	erasureHTTP "github.com/allisson/phiguard/internal/erasure/http"
	"github.com/allisson/phiguard/internal/gate"
)

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// RouterConfig carries the handlers and optional middleware the router is
// assembled from. Nil middleware entries are skipped.
type RouterConfig struct {
	DetectionHandler  *detectionHTTP.DetectionHandler
	CryptoHandler     *cryptoHTTP.CryptoHandler
	ErasureHandler    *erasureHTTP.ErasureHandler
	AuditEventHandler *auditHTTP.AuditEventHandler
	ComplianceHandler *complianceHTTP.ComplianceHandler

	// AuditRecorder backs the access gate on guarded routes.
	AuditRecorder gate.Recorder

	// CORSEnabled and CORSAllowOrigins configure the optional CORS layer.
	CORSEnabled      bool
	CORSAllowOrigins string

	// RateLimitEnabled, RateLimitRequestsPerSec and RateLimitBurst configure
	// the optional per-caller rate limiter.
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	// MetricsMiddleware records HTTP request metrics when non-nil.
	MetricsMiddleware gin.HandlerFunc
}

// NewServer creates a new HTTP server. The router is assembled separately via
// SetupRouter so tests can run a minimal router without the full handler set.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter assembles the Gin router with all middleware and API routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	// Actor identity is extracted for every request; guarded routes enforce
	// its presence themselves.
	router.Use(gate.ActorMiddleware())

	if cfg.RateLimitEnabled {
		router.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		detections := v1.Group("/detections")
		{
			detections.POST("/scan", cfg.DetectionHandler.ScanHandler)
			detections.POST("/redact", cfg.DetectionHandler.RedactHandler)
		}

		crypto := v1.Group("/crypto")
		{
			crypto.POST("/encrypt", cfg.CryptoHandler.EncryptHandler)
			crypto.POST("/decrypt", cfg.CryptoHandler.DecryptHandler)
			crypto.POST("/hash", cfg.CryptoHandler.HashHandler)
		}

		erasures := v1.Group("/erasures")
		{
			// File destruction runs behind the access gate: the access audit
			// event is written before the handler executes.
			erasures.POST("",
				gate.RequireJustification("file erasure requested", "erasures", cfg.AuditRecorder, s.logger),
				cfg.ErasureHandler.EraseHandler)
			erasures.GET("", cfg.ErasureHandler.ListHandler)
		}

		v1.GET("/audit-events", cfg.AuditEventHandler.ListHandler)

		compliance := v1.Group("/compliance")
		{
			compliance.GET("/status", cfg.ComplianceHandler.StatusHandler)
			compliance.GET("/settings", cfg.ComplianceHandler.ListSettingsHandler)
			compliance.PUT("/settings/:key", cfg.ComplianceHandler.UpsertSettingHandler)
		}
	}

	s.router = router
}

// GetHandler returns the assembled router, or nil before SetupRouter ran.
// Used by tests to serve the router through httptest.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. The database
// is the only hard dependency checked; a failed ping means not ready.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
