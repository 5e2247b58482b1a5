package token

import "errors"

var (
	ErrInvalidToken     = errors.New("token: malformed token")
	ErrSignatureInvalid = errors.New("token: signature mismatch")
)
