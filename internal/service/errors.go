package service

import (
	"errors"
	"fmt"
)

var (
	ErrAccountExists    = errors.New("account already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrTokenInvalid     = errors.New("token invalid")
	ErrValidationFailed = errors.New("validation failed")
	ErrMalformedRequest = errors.New("malformed request")

	ErrTokenExpired    = fmt.Errorf("%w: expired", ErrTokenInvalid)
	ErrAccountDisabled = fmt.Errorf("%w: account disabled", ErrValidationFailed)
	ErrInvalidPassword = fmt.Errorf("%w: invalid password", ErrValidationFailed)
)
