package store

import "errors"

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrBlankNote    = errors.New("note title and content cannot both be blank")
)
