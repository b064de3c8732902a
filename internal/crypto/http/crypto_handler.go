// Package http provides HTTP handlers for envelope encryption operations.
package http

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/phiguard/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/phiguard/internal/crypto/usecase"
	apperrors "github.com/allisson/phiguard/internal/errors"
	"github.com/allisson/phiguard/internal/gate"
	"github.com/allisson/phiguard/internal/httputil"
	customValidation "github.com/allisson/phiguard/internal/validation"
)

// CryptoHandler handles HTTP requests for encrypt and decrypt operations.
type CryptoHandler struct {
	cryptoUseCase cryptoUseCase.CryptoUseCase
	logger        *slog.Logger
}

// NewCryptoHandler creates a new crypto handler with required dependencies.
func NewCryptoHandler(
	cryptoUseCase cryptoUseCase.CryptoUseCase,
	logger *slog.Logger,
) *CryptoHandler {
	return &CryptoHandler{
		cryptoUseCase: cryptoUseCase,
		logger:        logger,
	}
}

// EncryptHandler seals base64-encoded plaintext into an authenticated envelope.
// POST /v1/crypto/encrypt
// Returns 200 OK with the envelope fields base64-encoded. The plaintext is
// never persisted or logged.
func (h *CryptoHandler) EncryptHandler(c *gin.Context) {
	if _, ok := gate.GetActor(c.Request.Context()); !ok {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing actor identity"), h.logger)
		return
	}

	var req dto.EncryptRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Base64 shape was validated above.
	plaintext, err := base64.StdEncoding.DecodeString(req.Plaintext)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Call use case
	envelope, err := h.cryptoUseCase.Encrypt(c.Request.Context(), plaintext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Map to response
	response := dto.MapEnvelopeToResponse(envelope)
	c.JSON(http.StatusOK, response)
}

// DecryptHandler verifies and opens an envelope.
// POST /v1/crypto/decrypt
// Returns 200 OK with the base64-encoded plaintext. A tampered envelope fails
// authentication and returns 422 without releasing any plaintext.
func (h *CryptoHandler) DecryptHandler(c *gin.Context) {
	if _, ok := gate.GetActor(c.Request.Context()); !ok {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing actor identity"), h.logger)
		return
	}

	var req dto.DecryptRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	envelope, err := req.ToEnvelope()
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Call use case
	plaintext, err := h.cryptoUseCase.Decrypt(c.Request.Context(), envelope)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.DecryptResponse{
		Plaintext: base64.StdEncoding.EncodeToString(plaintext),
	}
	c.JSON(http.StatusOK, response)
}

// HashHandler fingerprints base64-encoded content.
// POST /v1/crypto/hash
// Returns 200 OK with the hex-encoded digest. The content itself is never
// persisted or logged.
func (h *CryptoHandler) HashHandler(c *gin.Context) {
	if _, ok := gate.GetActor(c.Request.Context()); !ok {
		httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "missing actor identity"), h.logger)
		return
	}

	var req dto.HashRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Base64 shape was validated above.
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	response := dto.HashResponse{
		Hash: h.cryptoUseCase.Hash(c.Request.Context(), data),
	}
	c.JSON(http.StatusOK, response)
}
