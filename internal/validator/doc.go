// Package validator provides struct validation for the client intake API.
//
// This package wraps go-playground/validator to provide:
//   - Consistent validation across all services
//   - Human-readable error messages keyed by JSON field name
//   - Translation into the application VALIDATION_ERROR
//
// # Usage
//
//	if err := validator.Check(input); err != nil {
//	    return nil, err // *errors.AppError with per-field details
//	}
//
// The validator instance is package-level and thread-safe.
package validator
