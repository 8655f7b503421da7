package domain

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPolicyNotFound      = errors.New("policy not found")
	ErrActionNotFound      = errors.New("action not found")
	ErrDuplicateContextKey = errors.New("duplicate context key")
)
