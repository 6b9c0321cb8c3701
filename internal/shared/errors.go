// Package shared defines sentinel errors and small utilities used across
// the client and server layers of blogbox. Callers should match the
// sentinels with errors.Is.
package shared

import "errors"

var (

	// repository errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// auth errors
	ErrorInvalidToken            = errors.New("invalid token")
	ErrorInvalidAuthheaderFormat = errors.New("invalid auth header format")
	ErrorEmailAlreadyExists      = errors.New("email already exists")
	ErrorInvalidEmailPassword    = errors.New("invalid email/password")

	// blog errors
	ErrorInvalidCategory = errors.New("invalid category")
)
