package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Post errors
	ErrPostNotFound  = errors.New("post not found")
	ErrSlugTaken     = errors.New("slug already in use")
	ErrNotPublished  = errors.New("post not published")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
