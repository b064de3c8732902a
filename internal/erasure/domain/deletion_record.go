// Package domain defines the secure erasure domain model: erasure methods,
// deletion records, and the errors of the destruction pipeline.
package domain

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/phiguard/internal/errors"
	appvalidation "github.com/allisson/phiguard/internal/validation"
)

// Method names a destruction technique for file contents.
type Method string

// Supported erasure methods.
const (
	// MethodOverwrite3 overwrites contents with three passes (zeros, ones,
	// random) before unlinking.
	MethodOverwrite3 Method = "overwrite3"

	// MethodOverwrite7 overwrites contents with seven alternating passes
	// before unlinking.
	MethodOverwrite7 Method = "overwrite7"

	// MethodDoD5220 overwrites contents following the DoD 5220.22-M pattern
	// (fixed byte, its complement, random) before unlinking.
	MethodDoD5220 Method = "dod5220"

	// MethodCryptoErase unlinks without overwriting. Only safe when the file
	// contents were encrypted and the key has been destroyed separately.
	MethodCryptoErase Method = "crypto_erase"
)

// ParseMethod converts a string into a Method, rejecting unknown values.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodOverwrite3, MethodOverwrite7, MethodDoD5220, MethodCryptoErase:
		return Method(s), nil
	default:
		return "", apperrors.Wrap(ErrUnsupportedMethod, s)
	}
}

// Passes returns the number of overwrite passes the method performs.
func (m Method) Passes() int {
	switch m {
	case MethodOverwrite3, MethodDoD5220:
		return 3
	case MethodOverwrite7:
		return 7
	default:
		return 0
	}
}

// DeletionRecord is the permanent proof that an erasure was attempted. Exactly
// one record exists per erase call, successful or not: failed attempts are
// evidence too.
type DeletionRecord struct {
	ID                 uuid.UUID
	ActorID            string
	OrganizationID     string
	Path               string
	Method             Method
	FileSize           int64
	ContentHash        string
	PassesCompleted    int
	VerificationPassed bool
	FailureReason      string
	Justification      string
	ErasedAt           time.Time
}

// EraseInput carries the caller-supplied fields of an erase request.
type EraseInput struct {
	Path          string
	Method        Method
	Justification string
}

// Validate checks the input fields against the domain rules. Paths must be
// absolute: relative paths depend on the process working directory and make
// the deletion record ambiguous.
func (i *EraseInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Path,
			validation.Required,
			appvalidation.AbsolutePath,
			validation.Length(1, 4096),
		),
		validation.Field(&i.Method, validation.Required, validation.In(
			MethodOverwrite3, MethodOverwrite7, MethodDoD5220, MethodCryptoErase,
		)),
		validation.Field(&i.Justification,
			validation.Required,
			appvalidation.NotBlank,
			validation.Length(1, 1024),
		),
	)
	return appvalidation.WrapValidationError(err)
}

// Secure erasure error definitions.
var (
	// ErrUnsupportedMethod indicates an erasure method this engine does not implement.
	ErrUnsupportedMethod = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported erasure method")

	// ErrTargetNotErasable indicates the target failed the precondition check:
	// it does not exist, is not a regular file, or could not be fingerprinted.
	// Nothing was destroyed.
	ErrTargetNotErasable = apperrors.Wrap(apperrors.ErrPrecondition, "target failed erasure precondition")

	// ErrEraseIncomplete indicates destruction started but did not finish. The
	// target must be treated as partially destroyed and still present.
	ErrEraseIncomplete = apperrors.Wrap(apperrors.ErrPersistence, "erasure did not complete")
)
