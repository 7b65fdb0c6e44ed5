package envelope

import "errors"

var (
	// ErrCannotOpen is returned for any envelope that fails to open: malformed
	// container, unknown key derivation function, wrong password or tampered data.
	ErrCannotOpen = errors.New("cannot open: wrong password or damaged file")
	// ErrEmptyPassword is returned when the password is empty.
	ErrEmptyPassword = errors.New("empty password")
	// ErrInvalidPassword is returned when the password contains unusable characters.
	ErrInvalidPassword = errors.New("invalid password")
)
