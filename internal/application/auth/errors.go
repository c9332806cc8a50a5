package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidEmail          = errors.New("Invalid Email")
	ErrIncorrectPassword     = errors.New("Incorrect Password")
	ErrNotAuthenticated      = errors.New("Not authenticated")
	ErrWeakPassword          = errors.New("Password must be at least 8 characters with a letter and a number")
	ErrInvalidRole           = errors.New("Invalid role")
	ErrEmailTaken            = errors.New("Email already registered")
)
