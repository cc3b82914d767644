package remote

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for remote loading.
var (
	ErrTimeout         = errors.New("remote: timed out")
	ErrInvalidTimeout  = errors.New("remote: timeout must be positive")
	ErrInvalidRoutes   = errors.New("remote: invalid routes export")
	ErrManifest        = errors.New("remote: stylesheet manifest unavailable")
	ErrStylesheetLoad  = errors.New("remote: css load failed")
	ErrInvalidURL      = errors.New("remote: invalid url")
	ErrInvalidRemote   = errors.New("remote: invalid descriptor")
	ErrPanicked        = errors.New("remote: operation panicked")
	ErrNoModuleLoader  = errors.New("remote: no module loader configured")
	ErrEmptyExposedKey = errors.New("remote: exposed key is required")
)

// TimeoutError reports that an operation did not settle within its deadline.
type TimeoutError struct {
	Label string
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %dms", e.Label, e.After.Milliseconds())
}

// Is makes errors.Is(err, ErrTimeout) hold for every TimeoutError.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// IsTimeout checks if err is a deadline error.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsInvalidRoutes checks if err is a shape-validation error.
func IsInvalidRoutes(err error) bool {
	return errors.Is(err, ErrInvalidRoutes)
}
