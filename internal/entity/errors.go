package entity

import "errors"

// Base error kinds. Domain errors wrap one of these so the HTTP layer can
// map them to a status code without knowing every sentinel.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)
