package payment

import "errors"

var (
	ErrInvalidPayment         = errors.New("invalid payment")
	ErrInvalidPaymentID       = errors.New("invalid payment id")
	ErrPaymentNotFound        = errors.New("payment not found")
	ErrDuplicateTransaction   = errors.New("upi transaction id already submitted")
	ErrPaymentAlreadyReviewed = errors.New("payment already reviewed")
	ErrSubmitPayment          = errors.New("failed to submit payment")
	ErrListPayments           = errors.New("failed to list payments")
	ErrReviewPayment          = errors.New("failed to review payment")
)
