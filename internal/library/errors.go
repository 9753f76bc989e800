package library

import "errors"

// Store errors. Callers map them onto API status codes with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate entry")
	ErrConstraint = errors.New("constraint violation") // CHECK or NOT NULL
)
