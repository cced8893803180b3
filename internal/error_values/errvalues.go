package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	// Entry pipeline
	ErrEmptyDescription = errors.New("entry description is empty")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrUnknownMode      = errors.New("unknown analysis mode")

	// AI service
	ErrRateLimited        = errors.New("completion service rate limited the request")
	ErrServiceUnavailable = errors.New("completion service unavailable")
	ErrQuotaExceeded      = errors.New("daily AI interaction limit reached")
)
