package order

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a placed checkout.
//
// Invariants:
//   - amount equals the sum of line prices at creation and is never recomputed
//   - lines are immutable after creation
//   - status only moves through Status.Apply
//   - version increases by one with every persisted transition
type Order struct {
	id        kernel.UUID
	userID    kernel.UUID
	createdAt time.Time
	amount    kernel.Money
	address   string
	phone     string
	status    Status
	version   int64
	lines     []Line

	events []kernel.DomainEvent

	isConstructed bool
}

// NewOrder creates a Pending order owned by userID and records an EventPlaced event.
// The amount is the exact sum of the line prices; the line price already holds the
// full line value, so it is not multiplied by quantity.
//
// Example:
//
//	line, _ := order.NewLine(kernel.NewUUID(), productID, 2, kernel.MustMoney("20.00"))
//	o, err := order.NewOrder(kernel.NewUUID(), userID, "1 Rd", "555", []order.Line{line}, time.Now())
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	address string,
	phone string,
	lines []Line,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		address:       address,
		phone:         phone,
		createdAt:     createdAt,
		amount:        kernel.Zero(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.lines = make([]Line, 0, len(lines))
	for _, line := range lines {
		o.lines = append(o.lines, line)
		o.amount = o.amount.Add(line.Price())
	}

	o.record(EventPlaced, createdAt)
	return o, nil
}

// RestoreOrder rebuilds an order from persistence without recording events.
func RestoreOrder(
	id kernel.UUID,
	userID kernel.UUID,
	createdAt time.Time,
	amount kernel.Money,
	address string,
	phone string,
	status Status,
	version int64,
	lines []Line,
) (*Order, error) {
	o := &Order{
		amount:        amount,
		address:       address,
		phone:         phone,
		version:       version,
		lines:         lines,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setCreatedAt(createdAt),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) ID() kernel.UUID      { return o.id }
func (o *Order) UserID() kernel.UUID  { return o.userID }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) Amount() kernel.Money { return o.amount }
func (o *Order) Address() string      { return o.address }
func (o *Order) Phone() string        { return o.phone }
func (o *Order) Status() Status       { return o.status }
func (o *Order) Version() int64       { return o.version }

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Transition applies an operator action under the given policy and records the
// matching event. The aggregate is left untouched when the transition is rejected.
func (o *Order) Transition(action Action, policy TransitionPolicy) error {
	next, err := o.status.Apply(action, policy)
	if err != nil {
		return err
	}

	o.status = next
	o.record(eventKindFor(next), time.Now().UTC())
	return nil
}

// Deliver moves the order to Delivering.
func (o *Order) Deliver(policy TransitionPolicy) error {
	return o.Transition(ActionDeliver, policy)
}

// MarkSuccess moves the order to Completed.
func (o *Order) MarkSuccess(policy TransitionPolicy) error {
	return o.Transition(ActionMarkSuccess, policy)
}

// Cancel moves the order to Cancelled.
func (o *Order) Cancel(policy TransitionPolicy) error {
	return o.Transition(ActionCancel, policy)
}

// MarkPersisted is called by the repository once a versioned update succeeded.
func (o *Order) MarkPersisted(version int64) {
	o.version = version
}

// PendingEvents returns recorded events without clearing them.
func (o *Order) PendingEvents() []kernel.DomainEvent {
	events := make([]kernel.DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

// PullDomainEvents implements kernel.EventSource.
func (o *Order) PullDomainEvents() []kernel.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) record(kind EventKind, at time.Time) {
	o.events = append(o.events, Event{
		Kind:       kind,
		OrderID:    o.id,
		UserID:     o.userID,
		Amount:     o.amount,
		Address:    o.address,
		Status:     o.status,
		OccurredAt: at,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
