package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameRegistered  = errors.New("username already registered")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrScheduleNotFound    = errors.New("schedule item not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidProgress     = errors.New("progress must be between 0 and 100")
	ErrAnswerCountMismatch = errors.New("answers length must match questions length")
)
