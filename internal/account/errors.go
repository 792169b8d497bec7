package account

import "errors"

var (
	// ErrInvalidInput indicates the request failed field validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates the account does not exist.
	ErrNotFound = errors.New("account not found")
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
