// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/phiguard/internal/crypto/domain"
	customValidation "github.com/allisson/phiguard/internal/validation"
)

// EncryptRequest contains the parameters for encrypting data.
type EncryptRequest struct {
	Plaintext string `json:"plaintext"` // Base64-encoded plaintext
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Plaintext,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
	)
}

// EnvelopeResponse represents an encrypted envelope in API responses.
// All fields are base64-encoded.
type EnvelopeResponse struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	Salt       string `json:"salt"`
	AuthTag    string `json:"auth_tag"`
}

// MapEnvelopeToResponse converts a domain envelope to an API response.
func MapEnvelopeToResponse(envelope *cryptoDomain.EncryptedEnvelope) EnvelopeResponse {
	return EnvelopeResponse{
		Ciphertext: base64.StdEncoding.EncodeToString(envelope.Ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(envelope.Nonce),
		Salt:       base64.StdEncoding.EncodeToString(envelope.Salt),
		AuthTag:    base64.StdEncoding.EncodeToString(envelope.AuthTag),
	}
}

// DecryptRequest contains the base64-encoded envelope fields to decrypt.
type DecryptRequest struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	Salt       string `json:"salt"`
	AuthTag    string `json:"auth_tag"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Ciphertext, validation.Required, customValidation.Base64),
		validation.Field(&r.Nonce, validation.Required, customValidation.Base64),
		validation.Field(&r.Salt, validation.Required, customValidation.Base64),
		validation.Field(&r.AuthTag, validation.Required, customValidation.Base64),
	)
}

// ToEnvelope decodes the request fields into a domain envelope.
func (r *DecryptRequest) ToEnvelope() (*cryptoDomain.EncryptedEnvelope, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(r.Ciphertext)
	if err != nil {
		return nil, err
	}
	nonce, err := base64.StdEncoding.DecodeString(r.Nonce)
	if err != nil {
		return nil, err
	}
	salt, err := base64.StdEncoding.DecodeString(r.Salt)
	if err != nil {
		return nil, err
	}
	authTag, err := base64.StdEncoding.DecodeString(r.AuthTag)
	if err != nil {
		return nil, err
	}

	return &cryptoDomain.EncryptedEnvelope{
		Ciphertext: ciphertext,
		Nonce:      nonce,
		Salt:       salt,
		AuthTag:    authTag,
	}, nil
}

// DecryptResponse contains the decrypted plaintext, base64-encoded.
type DecryptResponse struct {
	Plaintext string `json:"plaintext"`
}

// HashRequest contains the content to fingerprint.
type HashRequest struct {
	Data string `json:"data"` // Base64-encoded content
}

// Validate checks if the hash request is valid.
func (r *HashRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Data,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
	)
}

// HashResponse contains the hex-encoded content fingerprint.
type HashResponse struct {
	Hash string `json:"hash"`
}
