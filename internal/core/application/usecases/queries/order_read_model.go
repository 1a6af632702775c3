// Package queries contains read operations over storefront state.
// Handlers run plain SQL on a GORM connection and return read models; they never
// load aggregates or open a unit of work.
package queries

import (
	"database/sql"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderResponse is the read model of an order header.
type OrderResponse struct {
	ID        kernel.UUID
	UserID    kernel.UUID
	CreatedAt time.Time
	Amount    decimal.Decimal
	Address   string
	Phone     string
	Status    order.Status
	Version   int64
}

// OrderLineResponse is the read model of one order detail.
type OrderLineResponse struct {
	ID        kernel.UUID
	ProductID kernel.UUID
	Quantity  int
	Price     decimal.Decimal
}

const selectOrders = `
	SELECT
		id,
		user_id,
		created_at,
		amount,
		address,
		phone,
		status,
		version
	FROM orders`

func scanOrders(rows *sql.Rows) ([]OrderResponse, error) {
	orders := make([]OrderResponse, 0)
	for rows.Next() {
		var o OrderResponse
		var id, userID uuid.UUID
		var status int16

		err := rows.Scan(
			&id,
			&userID,
			&o.CreatedAt,
			&o.Amount,
			&o.Address,
			&o.Phone,
			&status,
			&o.Version,
		)
		if err != nil {
			return nil, err
		}

		if o.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if o.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		o.Status = order.Status(status)
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
