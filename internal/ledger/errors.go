package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryFailed wraps every persistence failure surfaced by the service.
	ErrQueryFailed = errors.New("ledger query failed")
	// ErrInvalidWindow is returned for a reporting window that cannot exist.
	ErrInvalidWindow = errors.New("invalid report window")
	// ErrInvalidMutation is returned when a mutation breaks the ledger invariants.
	ErrInvalidMutation = errors.New("invalid mutation")
)

func invalidMutation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMutation, fmt.Sprintf(format, args...))
}

func queryFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrQueryFailed, op, err)
}
