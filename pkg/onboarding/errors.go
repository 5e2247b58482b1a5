package onboarding

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicateActiveUser  = errors.New("an active user with this email already exists")
	ErrInvitationInvalid    = errors.New("invitation token is invalid")
	ErrInvitationExpired    = errors.New("invitation token has expired")
	ErrInvitationIncomplete = errors.New("invitation record is missing required fields")
)
