// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// maxScanBytes bounds the text accepted by the scan and redact endpoints.
const maxScanBytes = 1 << 20

// ScanRequest contains the text to classify.
type ScanRequest struct {
	Text string `json:"text"`
}

// Validate checks if the scan request is valid.
func (r *ScanRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text,
			validation.Required,
			validation.Length(1, maxScanBytes),
		),
	)
}

// RedactRequest contains the text to redact.
type RedactRequest struct {
	Text string `json:"text"`
}

// Validate checks if the redact request is valid.
func (r *RedactRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Text,
			validation.Required,
			validation.Length(1, maxScanBytes),
		),
	)
}
