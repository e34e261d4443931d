package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAccountResolution indicates that a posted transaction references an
// account absent from the catalog. A transaction dropped silently here would
// be invisibly excluded from every total, so summary computations fail
// instead of zero-filling.
var ErrAccountResolution = errors.New("transaction references unknown account")
