package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session related errors
	ErrNoToken        = errors.New("no session token")
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrSessionRevoked = errors.New("session subject missing or suspended")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Template related errors
	ErrTemplateNotFound = errors.New("template not found")

	// Resource related errors
	ErrPlayerNotFound       = errors.New("player not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrCommendationNotFound = errors.New("commendation not found")
	ErrMediaNotFound        = errors.New("media item not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
