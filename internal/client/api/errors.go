package api

import "errors"

var (
	// ErrUnavailable means the server could not be reached or did not
	// answer in time.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized covers every authentication failure: rejected
	// credentials, expired or malformed tokens, and responses whose body
	// cannot be decoded. The only recovery is to treat the caller as
	// logged out, so finer classification is not exposed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRequestFailed is a transient request failure that does not
	// affect session state.
	ErrRequestFailed = errors.New("request failed")
)
