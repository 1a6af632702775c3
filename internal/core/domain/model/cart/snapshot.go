package cart

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// SnapshotLine is a read-only view of one line taken at checkout time.
type SnapshotLine struct {
	ProductID kernel.UUID
	Quantity  int
	Price     kernel.Money
}

// Snapshot is the cart content an order is built from. LineIDs holds the ids of
// the stored cart lines consumed by the checkout and is empty for guest carts.
type Snapshot struct {
	Address string
	Phone   string
	Lines   []SnapshotLine
	LineIDs []kernel.UUID
}

// TakeSnapshot reads a stored cart and its lines. Address and phone fall back to
// the cart's values when override is empty.
func TakeSnapshot(c *Cart, lines []Line, address, phone string) Snapshot {
	s := Snapshot{
		Address: firstNonEmpty(address, c.Address()),
		Phone:   firstNonEmpty(phone, c.Phone()),
		Lines:   make([]SnapshotLine, 0, len(lines)),
		LineIDs: make([]kernel.UUID, 0, len(lines)),
	}
	for _, l := range lines {
		s.Lines = append(s.Lines, SnapshotLine{ProductID: l.ProductID(), Quantity: l.Quantity(), Price: l.Price()})
		s.LineIDs = append(s.LineIDs, l.ID())
	}
	return s
}

// GuestCart is the inline cart a guest submits with checkout.
type GuestCart struct {
	Name    string
	Address string
	Phone   string
	Lines   []SnapshotLine
}

// Validate checks every inline line references a product with a positive quantity.
func (g GuestCart) Validate() error {
	for i, l := range g.Lines {
		if err := l.ProductID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("line %d product", i), err)
		}
		if l.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("line %d quantity", i),
				fmt.Errorf("%d is not greater than 0", l.Quantity),
			)
		}
	}
	return nil
}

// Snapshot turns the inline cart into a checkout snapshot.
func (g GuestCart) Snapshot() Snapshot {
	lines := make([]SnapshotLine, len(g.Lines))
	copy(lines, g.Lines)
	return Snapshot{Address: g.Address, Phone: g.Phone, Lines: lines}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
