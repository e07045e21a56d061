package utils

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAccountNotFound     = errors.New("account not found")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrCreditRowMissing    = errors.New("no credit row for user")
	ErrInsufficientCredits = errors.New("no credits left")
	ErrModelNotFound       = errors.New("model not found")
	ErrImageNotFound       = errors.New("image not found")
	ErrDuplicateDelivery   = errors.New("webhook delivery already processed")
	ErrSignatureInvalid    = errors.New("invalid webhook signature")
	ErrUpstreamFailure     = errors.New("upstream provider request failed")
	ErrDatabaseError       = errors.New("database error")
)
