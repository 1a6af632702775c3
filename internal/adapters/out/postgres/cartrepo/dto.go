// Package cartrepo persists carts and cart details with GORM.
package cartrepo

import (
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartDTO struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID       `gorm:"type:uuid;index"`
	Amount  decimal.Decimal `gorm:"type:numeric(14,2)"`
	Address string
	Phone   string
}

func (CartDTO) TableName() string {
	return "carts"
}

type CartDetailDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Quantity  int
	Price     decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt time.Time
}

func (CartDetailDTO) TableName() string {
	return "cart_details"
}

func fromDomain(c *cart.Cart) CartDTO {
	return CartDTO{
		ID:      c.ID().Bytes(),
		UserID:  c.UserID().Bytes(),
		Amount:  c.Amount().Decimal(),
		Address: c.Address(),
		Phone:   c.Phone(),
	}
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
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
	return cart.RestoreCart(id, userID, amount, dto.Address, dto.Phone)
}

// LineFromDomain maps a cart line for insertion. The catalog side owns cart
// lines, so the core only needs this when seeding data.
func LineFromDomain(l cart.Line) CartDetailDTO {
	return CartDetailDTO{
		ID:        l.ID().Bytes(),
		CartID:    l.CartID().Bytes(),
		ProductID: l.ProductID().Bytes(),
		Quantity:  l.Quantity(),
		Price:     l.Price().Decimal(),
	}
}

func lineToDomain(dto CartDetailDTO) (cart.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return cart.Line{}, err
	}
	cartID, err := kernel.UUIDFromBytes(dto.CartID[:])
	if err != nil {
		return cart.Line{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return cart.Line{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return cart.Line{}, err
	}
	return cart.NewLine(id, cartID, productID, dto.Quantity, price)
}
