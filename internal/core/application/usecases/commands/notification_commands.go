package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateNotificationCommandIsNotConstructed = errors.New(
		"CreateNotificationCommand must be created via NewCreateNotificationCommand constructor",
	)
	ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
		"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
	)
	ErrMarkAllNotificationsReadCommandIsNotConstructed = errors.New(
		"MarkAllNotificationsReadCommand must be created via NewMarkAllNotificationsReadCommand constructor",
	)
	ErrRelayNotificationsCommandIsNotConstructed = errors.New(
		"RelayNotificationsCommand must be created via NewRelayNotificationsCommand constructor",
	)
	ErrMessageIsRequired  = errors.New("message is required")
	ErrBatchSizeIsInvalid = errors.New("batch size must be greater than 0")
)

// CreateNotificationCommand adds an entry to the admin feed and pushes it live.
type CreateNotificationCommand struct {
	message string
	guard   guard.ConstructorGuard
}

func NewCreateNotificationCommand(message string) (CreateNotificationCommand, error) {
	if strings.TrimSpace(message) == "" {
		return CreateNotificationCommand{}, ErrMessageIsRequired
	}
	return CreateNotificationCommand{message: message, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateNotificationCommand) Validate() error {
	return c.guard.Validate(ErrCreateNotificationCommandIsNotConstructed)
}

func (c CreateNotificationCommand) Message() string { return c.message }

type MarkNotificationReadCommand struct {
	id    kernel.UUID
	guard guard.ConstructorGuard
}

func NewMarkNotificationReadCommand(id kernel.UUID) (MarkNotificationReadCommand, error) {
	if err := id.Validate(); err != nil {
		return MarkNotificationReadCommand{}, err
	}
	return MarkNotificationReadCommand{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

func (c MarkNotificationReadCommand) ID() kernel.UUID { return c.id }

type MarkAllNotificationsReadCommand struct {
	guard guard.ConstructorGuard
}

func NewMarkAllNotificationsReadCommand() MarkAllNotificationsReadCommand {
	return MarkAllNotificationsReadCommand{guard: guard.NewConstructorGuard()}
}

func (c MarkAllNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkAllNotificationsReadCommandIsNotConstructed)
}

// RelayNotificationsCommand re-broadcasts notifications that never reached the
// live feed, oldest first, at most batchSize per run.
type RelayNotificationsCommand struct {
	batchSize int
	guard     guard.ConstructorGuard
}

func NewRelayNotificationsCommand(batchSize int) (RelayNotificationsCommand, error) {
	if batchSize <= 0 {
		return RelayNotificationsCommand{}, ErrBatchSizeIsInvalid
	}
	return RelayNotificationsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrRelayNotificationsCommandIsNotConstructed)
}

func (c RelayNotificationsCommand) BatchSize() int { return c.batchSize }
