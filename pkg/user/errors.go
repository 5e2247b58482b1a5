package user

import "errors"

var (
	ErrProfileNotFound      = errors.New("user profile not found")
	ErrProfileAlreadyExists = errors.New("user profile already exists")
)
