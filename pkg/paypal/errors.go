package paypal

import "errors"

var (
	ErrAuthFailed           = errors.New("paypal authentication failed")
	ErrOrderNotFound        = errors.New("paypal order not found")
	ErrUnexpectedStatusCode = errors.New("unexpected paypal status code")
	ErrOrderNotCompleted    = errors.New("paypal order not completed")
)
