package domain

import "errors"

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrCatalogEmpty    = errors.New("catalog is empty")
	ErrInvalidSession  = errors.New("invalid session")
)
