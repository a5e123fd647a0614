package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrSelfMatch    = errors.New("self match")
	ErrUnauthorized = errors.New("unauthorized action")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
)
