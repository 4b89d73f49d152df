package payment

import "errors"

var (
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrDuplicateTransaction   = errors.New("upi transaction id already submitted")
	ErrPaymentAlreadyReviewed = errors.New("payment already reviewed")
)
