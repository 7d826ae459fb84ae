package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Status tracks an order through its lifecycle. PENDING and IN_PROGRESS
// orders may still move; DONE and CANCELLED are terminal.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCancelled  Status = "CANCELLED"
	StatusDone       Status = "DONE"
)

// ErrUnknownStatus is returned by ParseStatus for unrecognized values.
var ErrUnknownStatus = errors.New("unknown order status")

// ParseStatus converts a persisted status string back to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCancelled, StatusDone:
		return Status(s), nil
	default:
		return "", errors.Wrapf(ErrUnknownStatus, "%q", s)
	}
}

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// Priority ranks statuses for display: actionable orders first.
func (s Status) Priority() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusDone:
		return 2
	default:
		return 3
	}
}

// TerminalTransitionError indicates an attempt to move an order out of
// a terminal status.
type TerminalTransitionError struct {
	From Status
	To   Status
}

func (e *TerminalTransitionError) Error() string {
	return fmt.Sprintf("order is %s, cannot transition to %s", e.From, e.To)
}
