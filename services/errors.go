package services

import (
	"errors"

	"mindspace-notes/mindspace/store"
)

// Common errors
var (
	ErrValidation         = errors.New("validation error")
	ErrNoteNotFound       = store.ErrNoteNotFound
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
