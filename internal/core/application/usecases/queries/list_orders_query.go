package queries

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
	ErrListOrdersByOwnerQueryIsNotConstructed = errors.New(
		"ListOrdersByOwnerQuery must be created via NewListOrdersByOwnerQuery constructor",
	)
)

// ListOrdersQuery returns every order, newest first.
type ListOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(selectOrders + ` ORDER BY created_at DESC, id`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListOrdersByOwnerQuery returns the orders of every account registered with
// an email, newest first.
type ListOrdersByOwnerQuery struct {
	email string
	guard guard.ConstructorGuard
}

func NewListOrdersByOwnerQuery(email string) (ListOrdersByOwnerQuery, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return ListOrdersByOwnerQuery{}, errs.NewValueIsRequiredError("email")
	}
	return ListOrdersByOwnerQuery{email: email, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersByOwnerQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByOwnerQueryIsNotConstructed)
}

func (q ListOrdersByOwnerQuery) Email() string { return q.email }

type ListOrdersByOwnerQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersByOwnerQueryHandler(db *gorm.DB) ListOrdersByOwnerQueryHandler {
	return ListOrdersByOwnerQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when no account uses the email. An
// account without orders yields an empty slice.
func (h ListOrdersByOwnerQueryHandler) Handle(ctx context.Context, query ListOrdersByOwnerQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)`, query.Email()).Scan(&exists).Error; err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("user", query.Email())
	}

	rows, err := db.Raw(selectOrders+`
		WHERE user_id IN (SELECT id FROM users WHERE email = ?)
		ORDER BY created_at DESC, id`, query.Email()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}
