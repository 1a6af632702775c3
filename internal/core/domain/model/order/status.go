package order

import (
	"errors"
	"fmt"

	"storefront/internal/pkg/errs"
)

// ErrTransitionNotAllowed is wrapped by every rejected status transition.
var ErrTransitionNotAllowed = errors.New("order status transition is not allowed")

// Status represents the lifecycle state of an order. The numeric values are
// persisted and exposed to clients, so they must not be renumbered.
//
// State transitions:
//
//	Pending ──deliver──> Delivering ──markSuccess──> Completed
//	   │                     │
//	   └──────cancel─────────┴──────> Cancelled
//
// Completed and Cancelled are terminal.
type Status int

const (
	// Pending is the only initial status; every checkout produces a Pending order.
	Pending Status = iota

	// Delivering means the order has left the warehouse.
	Delivering

	// Completed means the customer received the order. Terminal.
	Completed

	// Cancelled means the order was withdrawn. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:    "Pending",
		Delivering: "Delivering",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks that a value read from storage or a client is a known status.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name, or "Unknown" for values outside the enum.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is defined from s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Action is an operator request that moves an order along its lifecycle.
type Action int

const (
	ActionDeliver Action = iota + 1
	ActionMarkSuccess
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDeliver:
		return "deliver"
	case ActionMarkSuccess:
		return "mark_success"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Target returns the status an action moves the order into.
func (a Action) Target() (Status, error) {
	switch a {
	case ActionDeliver:
		return Delivering, nil
	case ActionMarkSuccess:
		return Completed, nil
	case ActionCancel:
		return Cancelled, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%d is not a valid action", a))
	}
}

// TransitionPolicy decides which predecessor states an action accepts.
type TransitionPolicy int

const (
	// Permissive accepts every action from every non-terminal state, as the
	// storefront always has. The only extra rule is that an action cannot
	// re-enter the state the order is already in, so deliver twice never
	// moves inventory twice.
	Permissive TransitionPolicy = iota

	// Strict accepts deliver only from Pending and markSuccess only from
	// Delivering. Cancel is accepted from any non-terminal state.
	Strict
)

// ParseTransitionPolicy maps configuration values ("permissive", "strict") to a policy.
func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch s {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("transition policy is invalid", fmt.Errorf("%q is not supported", s))
	}
}

func (p TransitionPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}

// Apply validates the action against the current status and returns the new status.
func (s Status) Apply(action Action, policy TransitionPolicy) (Status, error) {
	target, err := action.Target()
	if err != nil {
		return 0, err
	}

	if err = s.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: %s is terminal, cannot %s", ErrTransitionNotAllowed, s, action)
	}

	if s == target {
		return 0, fmt.Errorf("%w: order is already %s", ErrTransitionNotAllowed, s)
	}

	if policy == Strict {
		if expected, ok := strictPredecessor(action); ok && s != expected {
			return 0, fmt.Errorf("%w: %s requires %s but order is %s", ErrTransitionNotAllowed, action, expected, s)
		}
	}

	return target, nil
}

func strictPredecessor(action Action) (Status, bool) {
	//nolint:exhaustive // cancel has no single predecessor
	switch action {
	case ActionDeliver:
		return Pending, true
	case ActionMarkSuccess:
		return Delivering, true
	default:
		return 0, false
	}
}
