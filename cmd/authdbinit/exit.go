package main

import (
	"github.com/pkg/errors"
	"github.com/rmorlok/authdbinit/internal/bootstrap"
)

const (
	exitOK             = 0
	exitFailure        = 1
	exitInvalidConfig  = 2
	exitNotInitialized = 3
)

// configError marks failures that happen before the database is contacted because the configuration or the
// admin identity could not be loaded.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

var errNotInitialized = errors.New("principal does not exist")

func exitCode(err error) int {
	var ce *configError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNotInitialized):
		return exitNotInitialized
	case errors.As(err, &ce), errors.Is(err, bootstrap.ErrInvalidSpec):
		return exitInvalidConfig
	default:
		return exitFailure
	}
}
