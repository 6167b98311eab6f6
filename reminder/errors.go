package reminder

import (
	"errors"
	"fmt"
)

// ErrAlreadyTaken reports a duplicate mark-as-taken for the same
// (subject, medication, date). Surfaced to the API as a conflict.
var ErrAlreadyTaken = errors.New("medication already taken today")

// ErrStreakNotFound reports a definitive not-found from the streak store.
// Only this error may be treated as "no prior streak".
var ErrStreakNotFound = errors.New("streak not found")

// DeliveryError wraps a transport rejection or timeout while sending a
// notification
type DeliveryError struct {
	Address string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Address, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// StoreError wraps a read or write failure from the document store
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
