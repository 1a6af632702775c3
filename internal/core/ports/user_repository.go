package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
)

type UserRepository interface {
	Add(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// FindByEmail returns the oldest account registered with email.
	// Email is not unique, guest checkout may have created duplicates.
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}
