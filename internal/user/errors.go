package user

import "errors"

var (
	// ErrDuplicateUsername is returned by Register when the username is
	// already taken. Usernames are case-sensitive and never reused.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password, so a caller cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is internal to the repositories; the service folds
	// it into ErrInvalidCredentials before it reaches a caller.
	ErrUserNotFound = errors.New("user not found")
)
