package eventhandlers

import (
	"context"
	"fmt"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/notification"
	"storefront/internal/core/domain/model/order"
)

type NotificationCreator interface {
	Handle(ctx context.Context, cmd commands.CreateNotificationCommand) (*notification.Notification, error)
}

// OrderNotificationRecorder adds an admin feed entry for every order event.
// The entry is broadcast to live viewers by the create handler.
type OrderNotificationRecorder struct {
	creator NotificationCreator
}

func NewOrderNotificationRecorder(creator NotificationCreator) *OrderNotificationRecorder {
	return &OrderNotificationRecorder{creator: creator}
}

func (r *OrderNotificationRecorder) Handle(ctx context.Context, event kernel.DomainEvent) error {
	e, ok := event.(order.Event)
	if !ok {
		return nil
	}

	cmd, err := commands.NewCreateNotificationCommand(notificationMessage(e))
	if err != nil {
		return err
	}

	if _, err = r.creator.Handle(ctx, cmd); err != nil {
		return fmt.Errorf("record notification for order %s: %w", e.OrderID, err)
	}
	return nil
}

func notificationMessage(e order.Event) string {
	switch e.Kind {
	case order.EventPlaced:
		return fmt.Sprintf("New order %s placed (%s)", e.OrderID, e.Amount)
	case order.EventDelivering:
		return fmt.Sprintf("Order %s is being delivered", e.OrderID)
	case order.EventCompleted:
		return fmt.Sprintf("Order %s was delivered", e.OrderID)
	case order.EventCancelled:
		return fmt.Sprintf("Order %s was cancelled", e.OrderID)
	default:
		return fmt.Sprintf("Order %s changed to %s", e.OrderID, e.Status)
	}
}
