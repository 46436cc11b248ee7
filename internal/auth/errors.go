package auth

import "errors"

var (
	// ErrTokenInvalid is returned when a JWT fails signature, expiry, or
	// claim validation.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrInvalidCredentials is returned when a login attempt fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidHash is returned when a stored password hash cannot be
	// parsed.
	ErrInvalidHash = errors.New("invalid password hash")
)
