package domain

import "errors"

// ErrNotFound is returned by repo, service and tagging functions when the
// requested entity or tag does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing name, absent tag identity).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
