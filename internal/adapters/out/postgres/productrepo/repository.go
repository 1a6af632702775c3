package productrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AdjustStock runs a single UPDATE so concurrent adjustments of the same
// product serialize on the row lock instead of overwriting each other.
func (r *GormProductRepository) AdjustStock(ctx context.Context, adj product.Adjustment) error {
	if err := adj.ProductID.Validate(); err != nil {
		return err
	}
	if adj.Units <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("units", fmt.Errorf("%d is not greater than 0", adj.Units))
	}

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", adj.ProductID.Bytes()).
		UpdateColumns(map[string]any{
			"quantity": gorm.Expr("quantity - ?", adj.Units),
			"sold":     gorm.Expr("sold + ?", adj.Units),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", adj.ProductID.String())
	}

	return nil
}

// Add inserts a product row. Products are owned by the catalog; this exists
// for seeding.
func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) error {
	dto := ProductDTO{ID: p.ID().Bytes(), Name: p.Name(), Quantity: p.Quantity(), Sold: p.Sold()}
	return r.db.WithContext(ctx).Create(&dto).Error
}
