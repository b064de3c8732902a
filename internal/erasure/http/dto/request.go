// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	erasureDomain "github.com/allisson/phiguard/internal/erasure/domain"
)

// EraseRequest contains the parameters for erasing a file.
type EraseRequest struct {
	Path          string `json:"path"`
	Method        string `json:"method"` // "overwrite3", "overwrite7", "dod5220" or "crypto_erase"
	Justification string `json:"justification"`
}

// ToInput converts the request into a domain erase input. When no method is
// supplied the configured default is used. Field validation is the domain's
// responsibility.
func (r *EraseRequest) ToInput(defaultMethod erasureDomain.Method) *erasureDomain.EraseInput {
	method := erasureDomain.Method(r.Method)
	if r.Method == "" {
		method = defaultMethod
	}
	return &erasureDomain.EraseInput{
		Path:          r.Path,
		Method:        method,
		Justification: r.Justification,
	}
}
