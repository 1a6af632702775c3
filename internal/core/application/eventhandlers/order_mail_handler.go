package eventhandlers

import (
	"context"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// OrderMailHandler mails the order owner on placement and on every transition.
type OrderMailHandler struct {
	users    ports.UserRepository
	mailer   ports.Mailer
	composer *MailComposer
}

func NewOrderMailHandler(users ports.UserRepository, mailer ports.Mailer, composer *MailComposer) *OrderMailHandler {
	return &OrderMailHandler{users: users, mailer: mailer, composer: composer}
}

// Handle ignores events other than order.Event.
func (h *OrderMailHandler) Handle(ctx context.Context, event kernel.DomainEvent) error {
	e, ok := event.(order.Event)
	if !ok {
		return nil
	}

	owner, err := h.users.Get(ctx, e.UserID)
	if err != nil {
		return fmt.Errorf("resolve owner of order %s: %w", e.OrderID, err)
	}

	m, err := h.composer.Compose(owner.Email(), owner.Name(), e)
	if err != nil {
		return err
	}

	if err = h.mailer.Send(ctx, m); err != nil {
		return fmt.Errorf("send %s mail: %w", e.Kind, err)
	}
	return nil
}
