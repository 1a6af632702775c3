// Package orderrepo persists order aggregates and their lines with GORM.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Version backs the conditional update used for
// status transitions.
type OrderDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt time.Time       `gorm:"autoCreateTime:false"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2)"`
	Address   string
	Phone     string
	Status    int `gorm:"type:smallint"`
	Version   int64

	Details []OrderDetailDTO `gorm:"foreignKey:OrderID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderDetailDTO is one order_details row. Position keeps the cart order of lines.
type OrderDetailDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Position  int
	Quantity  int
	Price     decimal.Decimal `gorm:"type:numeric(14,2)"`
}

func (OrderDetailDTO) TableName() string {
	return "order_details"
}

func fromDomain(o *order.Order) OrderDTO {
	lines := o.Lines()
	details := make([]OrderDetailDTO, 0, len(lines))
	for i, l := range lines {
		details = append(details, OrderDetailDTO{
			ID:        l.ID().Bytes(),
			OrderID:   o.ID().Bytes(),
			ProductID: l.ProductID().Bytes(),
			Position:  i,
			Quantity:  l.Quantity(),
			Price:     l.Price().Decimal(),
		})
	}

	return OrderDTO{
		ID:        o.ID().Bytes(),
		UserID:    o.UserID().Bytes(),
		CreatedAt: o.CreatedAt(),
		Amount:    o.Amount().Decimal(),
		Address:   o.Address(),
		Phone:     o.Phone(),
		Status:    int(o.Status()),
		Version:   o.Version(),
		Details:   details,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Details))
	for _, d := range dto.Details {
		line, lineErr := detailToDomain(d)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		userID,
		dto.CreatedAt,
		amount,
		dto.Address,
		dto.Phone,
		order.Status(dto.Status),
		dto.Version,
		lines,
	)
}

func detailToDomain(d OrderDetailDTO) (order.Line, error) {
	lineID, err := kernel.UUIDFromBytes(d.ID[:])
	if err != nil {
		return order.Line{}, err
	}
	productID, err := kernel.UUIDFromBytes(d.ProductID[:])
	if err != nil {
		return order.Line{}, err
	}
	price, err := kernel.NewMoney(d.Price)
	if err != nil {
		return order.Line{}, err
	}
	return order.NewLine(lineID, productID, d.Quantity, price)
}
