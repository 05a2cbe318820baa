package repository

import "errors"

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrOrderNotFound       = errors.New("order not found")
	ErrTopupNotFound       = errors.New("topup request not found")
)
