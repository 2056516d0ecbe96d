package payment

import "errors"

var (
	ErrNotFound           = errors.New("payment not found")
	ErrAlreadyReviewed    = errors.New("payment already reviewed")
	ErrMalformedBreakdown = errors.New("payment breakdown does not match amount")
	ErrInvalidMonths      = errors.New("invalid months")
	ErrProofRequired      = errors.New("payment proof is required")
	ErrInvalidStatus      = errors.New("invalid payment status")
)
