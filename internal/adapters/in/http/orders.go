package http

import (
	"fmt"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	orders, err := s.handlers.ListOrders.Handle(c.Request().Context(), queries.NewListOrdersQuery())
	if err != nil {
		return s.writeError(c, err, "Failed to retrieve orders")
	}
	return c.JSON(http.StatusOK, ordersFromResponses(orders))
}

// ListOrdersByOwner handles GET /api/v1/orders/user/:email.
func (s *Server) ListOrdersByOwner(c echo.Context) error {
	query, err := queries.NewListOrdersByOwnerQuery(c.Param("email"))
	if err != nil {
		return badRequest(c, "Invalid email: "+err.Error())
	}

	orders, err := s.handlers.ListOrdersByOwner.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err, "Failed to retrieve orders")
	}
	return c.JSON(http.StatusOK, ordersFromResponses(orders))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return badRequest(c, "Invalid order id: "+err.Error())
	}

	resp, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err, "Failed to retrieve order")
	}

	dto := orderFromResponse(resp.OrderResponse)
	dto.Lines = linesFromResponses(resp.Lines)
	return c.JSON(http.StatusOK, dto)
}

// GetOrderDetails handles GET /api/v1/orders/:id/details.
func (s *Server) GetOrderDetails(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}
	query, err := queries.NewGetOrderDetailsQuery(id)
	if err != nil {
		return badRequest(c, "Invalid order id: "+err.Error())
	}

	lines, err := s.handlers.GetOrderDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err, "Failed to retrieve order details")
	}
	return c.JSON(http.StatusOK, linesFromResponses(lines))
}

// Checkout handles POST /api/v1/orders/:email - turns the customer's cart into an order.
func (s *Server) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cartID, err := kernel.UUIDFromString(req.CartID)
	if err != nil {
		return badRequest(c, "Invalid cart id")
	}
	cmd, err := commands.NewCheckoutCommand(c.Param("email"), cartID, req.Address, req.Phone)
	if err != nil {
		return badRequest(c, "Invalid checkout data: "+err.Error())
	}

	o, err := s.handlers.Checkout.Handle(c.Request().Context(), cmd)
	s.metrics.Checkout("registered", result(err))
	if err != nil {
		return s.writeError(c, err, "Failed to place order")
	}
	return c.JSON(http.StatusCreated, orderFromDomain(o))
}

// GuestCheckout handles POST /api/v1/orders/guest/:email - places an order for
// a visitor without an account.
func (s *Server) GuestCheckout(c echo.Context) error {
	var req GuestCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	guest, err := guestCartFromRequest(req)
	if err != nil {
		return badRequest(c, "Invalid checkout data: "+err.Error())
	}
	cmd, err := commands.NewGuestCheckoutCommand(c.Param("email"), guest)
	if err != nil {
		return badRequest(c, "Invalid checkout data: "+err.Error())
	}

	o, err := s.handlers.GuestCheckout.Handle(c.Request().Context(), cmd)
	s.metrics.Checkout("guest", result(err))
	if err != nil {
		return s.writeError(c, err, "Failed to place order")
	}
	return c.JSON(http.StatusCreated, orderFromDomain(o))
}

func guestCartFromRequest(req GuestCheckoutRequest) (cart.GuestCart, error) {
	guest := cart.GuestCart{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Lines:   make([]cart.SnapshotLine, 0, len(req.Lines)),
	}
	for i, l := range req.Lines {
		productID, err := kernel.UUIDFromString(l.ProductID)
		if err != nil {
			return cart.GuestCart{}, fmt.Errorf("line %d product id: %w", i, err)
		}
		price, err := kernel.MoneyFromFloat(l.Price)
		if err != nil {
			return cart.GuestCart{}, fmt.Errorf("line %d price: %w", i, err)
		}
		guest.Lines = append(guest.Lines, cart.SnapshotLine{ProductID: productID, Quantity: l.Quantity, Price: price})
	}
	return guest, nil
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
func (s *Server) DeliverOrder(c echo.Context) error {
	return s.transition(c, order.ActionDeliver)
}

// MarkOrderSuccess handles POST /api/v1/orders/:id/success.
func (s *Server) MarkOrderSuccess(c echo.Context) error {
	return s.transition(c, order.ActionMarkSuccess)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	return s.transition(c, order.ActionCancel)
}

func (s *Server) transition(c echo.Context, action order.Action) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}
	cmd, err := commands.NewTransitionOrderCommand(id, action)
	if err != nil {
		return badRequest(c, "Invalid order id: "+err.Error())
	}

	o, err := s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd)
	s.metrics.Transition(action.String(), result(err))
	if err != nil {
		return s.writeError(c, err, "Failed to update order")
	}
	return c.JSON(http.StatusOK, orderFromDomain(o))
}
