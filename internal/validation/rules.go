// Package validation provides custom validation rules for the application.
package validation

import (
	"path/filepath"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/phiguard/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// AbsolutePath validates that a string is an absolute filesystem path.
// Erasure targets must be absolute so the deletion record names the file
// unambiguously.
var AbsolutePath = validation.NewStringRuleWithError(
	func(s string) bool {
		return filepath.IsAbs(s)
	},
	validation.NewError("validation_absolute_path", "must be an absolute path"),
)
