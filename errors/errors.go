// Package errors provides error handling for typedoc.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//   - Marks, so typed decode errors match the sentinels below via Is()
//
// Usage:
//
//	// Wrap with context
//	if err := decode(raw); err != nil {
//	    return errors.Wrap(err, "failed to decode project")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "rerun with --lenient to drop undeclared fields")
//
//	// Check decode failures
//	if errors.Is(err, errors.ErrUnsupportedKind) {
//	    // schema drift: TypeDoc emitted a node we do not model
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Marks make an error equivalent to a reference error under Is()
// without changing its message or type.
var (
	Mark = crdb.Mark
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for decode failures.
// The typed errors in package schema are marked with these, so callers can
// use errors.Is() without importing schema, and errors.As() to get details.
var (
	// ErrValidation indicates a raw value does not satisfy its declared type
	ErrValidation = New("validation failed")

	// ErrUnsupportedKind indicates a discriminator maps to no supported node type
	ErrUnsupportedKind = New("unsupported kind")

	// ErrConstruction indicates a record rejected its validated field set
	ErrConstruction = New("construction failed")
)

// IsValidationError checks if an error is or wraps a validation failure
func IsValidationError(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// IsUnsupportedKindError checks if an error is or wraps an unsupported kind failure
func IsUnsupportedKindError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedKind)
}

// IsConstructionError checks if an error is or wraps a construction failure
func IsConstructionError(err error) bool {
	return err != nil && Is(err, ErrConstruction)
}

// IsDecodeError reports whether err is any of the decode failures.
func IsDecodeError(err error) bool {
	return err != nil && IsAny(err, ErrValidation, ErrUnsupportedKind, ErrConstruction)
}
