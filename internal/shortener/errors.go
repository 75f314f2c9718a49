package shortener

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is matched by every validation failure returned by Validator.
	ErrInvalidURL = errors.New("invalid url")

	// ErrDuplicateCode is returned by a Repository when the code is already taken.
	ErrDuplicateCode = errors.New("duplicate code")

	// ErrExhaustedRetries is returned when no unused code was found within the attempt budget.
	ErrExhaustedRetries = errors.New("exhausted code generation attempts")

	// ErrNotFound is returned by a Repository when no link is stored under the code.
	ErrNotFound = errors.New("link not found")

	// ErrStoreUnavailable wraps transport and connection faults from a Repository.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// InvalidURLError describes why an input was rejected.
type InvalidURLError struct {
	Input  string
	Reason error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("url validation failed: %v", e.Reason)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Reason
}

// Is reports ErrInvalidURL so callers can match on the kind without errors.As.
func (e *InvalidURLError) Is(target error) bool {
	return target == ErrInvalidURL
}
