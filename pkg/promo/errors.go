package promo

import "errors"

var (
	ErrCodeNotFound      = errors.New("promo code not found")
	ErrCodeAlreadyExists = errors.New("promo code already exists")
	ErrInvalidCode       = errors.New("invalid promo code")
)
