package costbasis

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransaction is returned for transactions rejected before replay.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrUnknownMethod is returned for a policy with no such cost basis method.
	ErrUnknownMethod = errors.New("unknown cost basis method")
	// ErrInsufficientLots is returned when a disposal exceeds the open quantity.
	ErrInsufficientLots = errors.New("insufficient lots")
	// ErrDegenerateAverage marks an average computed over a zero quantity.
	// The engine guards it and reports a zero cost instead.
	ErrDegenerateAverage = errors.New("degenerate average")
)

// invalidf returns an error wrapping ErrInvalidTransaction.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransaction, fmt.Sprintf(format, args...))
}

// InsufficientLotsError details a disposal that could not be covered by the
// open lots.
type InsufficientLotsError struct {
	Requested Quantity
	Available Quantity
}

func (e *InsufficientLotsError) Error() string {
	return fmt.Sprintf("%v: cannot dispose of %v, only %v open", ErrInsufficientLots, e.Requested, e.Available)
}

func (e *InsufficientLotsError) Unwrap() error { return ErrInsufficientLots }

// TxError is a failure attached to a single transaction of a replay.
type TxError struct {
	Index int    // position of the transaction in the replayed input
	TxID  string // id of the transaction, if any
	Err   error
}

func (e *TxError) Error() string {
	if e.TxID == "" {
		return fmt.Sprintf("transaction #%d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("transaction #%d (%s): %v", e.Index, e.TxID, e.Err)
}

func (e *TxError) Unwrap() error { return e.Err }
