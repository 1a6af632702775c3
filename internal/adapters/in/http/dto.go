package http

import (
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/notification"
	"storefront/internal/core/domain/model/order"
)

type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	CreatedAt  time.Time   `json:"created_at"`
	Amount     string      `json:"amount"`
	Address    string      `json:"address"`
	Phone      string      `json:"phone"`
	Status     int         `json:"status"`
	StatusName string      `json:"status_name"`
	Version    int64       `json:"version"`
	Lines      []OrderLine `json:"lines,omitempty"`
}

type OrderLine struct {
	ID        string `json:"id,omitempty"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type CheckoutRequest struct {
	CartID  string `json:"cart_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type GuestCheckoutRequest struct {
	Name    string             `json:"name"`
	Address string             `json:"address"`
	Phone   string             `json:"phone"`
	Lines   []GuestLineRequest `json:"lines"`
}

type GuestLineRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Notification struct {
	ID          string     `json:"id"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"time"`
	Read        bool       `json:"status"`
	BroadcastAt *time.Time `json:"broadcast_at,omitempty"`
}

type NotificationRequest struct {
	Message string `json:"message"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

func orderFromDomain(o *order.Order) Order {
	lines := make([]OrderLine, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, OrderLine{
			ID:        l.ID().String(),
			ProductID: l.ProductID().String(),
			Quantity:  l.Quantity(),
			Price:     l.Price().Decimal().StringFixed(2),
		})
	}
	return Order{
		ID:         o.ID().String(),
		UserID:     o.UserID().String(),
		CreatedAt:  o.CreatedAt(),
		Amount:     o.Amount().Decimal().StringFixed(2),
		Address:    o.Address(),
		Phone:      o.Phone(),
		Status:     int(o.Status()),
		StatusName: o.Status().String(),
		Version:    o.Version(),
		Lines:      lines,
	}
}

func orderFromResponse(r queries.OrderResponse) Order {
	return Order{
		ID:         r.ID.String(),
		UserID:     r.UserID.String(),
		CreatedAt:  r.CreatedAt,
		Amount:     r.Amount.StringFixed(2),
		Address:    r.Address,
		Phone:      r.Phone,
		Status:     int(r.Status),
		StatusName: r.Status.String(),
		Version:    r.Version,
	}
}

func ordersFromResponses(rs []queries.OrderResponse) []Order {
	orders := make([]Order, len(rs))
	for i, r := range rs {
		orders[i] = orderFromResponse(r)
	}
	return orders
}

func linesFromResponses(rs []queries.OrderLineResponse) []OrderLine {
	lines := make([]OrderLine, len(rs))
	for i, r := range rs {
		lines[i] = OrderLine{
			ID:        r.ID.String(),
			ProductID: r.ProductID.String(),
			Quantity:  r.Quantity,
			Price:     r.Price.StringFixed(2),
		}
	}
	return lines
}

func notificationFromDomain(n *notification.Notification) Notification {
	return Notification{
		ID:          n.ID().String(),
		Message:     n.Message(),
		CreatedAt:   n.CreatedAt(),
		Read:        n.Read(),
		BroadcastAt: n.BroadcastAt(),
	}
}

func notificationFromResponse(r queries.NotificationResponse) Notification {
	return Notification{
		ID:          r.ID.String(),
		Message:     r.Message,
		CreatedAt:   r.CreatedAt,
		Read:        r.Read,
		BroadcastAt: r.BroadcastAt,
	}
}
