package progress

import "errors"

var (
	// ErrInvalidInput indicates the request failed field validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrAlreadyCompleted indicates the level was already recorded for the user.
	ErrAlreadyCompleted = errors.New("level already completed")
	// ErrBadgeAlreadyEarned indicates the badge was already awarded to the user.
	ErrBadgeAlreadyEarned = errors.New("badge already earned")
)
