package paystack

import "errors"

var (
	ErrSignatureMismatch       = errors.New("paystack signature mismatch")
	ErrTransactionNotFound     = errors.New("paystack transaction not found")
	ErrUnexpectedStatusCode    = errors.New("unexpected paystack status code")
	ErrTransactionUnsuccessful = errors.New("paystack transaction not successful")
)
