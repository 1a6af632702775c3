package cartrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Add(ctx context.Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

func (r *GormCartRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCartRepository) get(_ context.Context, db *gorm.DB, id kernel.UUID) (*cart.Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCartRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart of user", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddLine inserts a cart detail.
func (r *GormCartRepository) AddLine(ctx context.Context, l cart.Line) error {
	dto := LineFromDomain(l)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormCartRepository) Lines(ctx context.Context, cartID kernel.UUID) ([]cart.Line, error) {
	var dtos []CartDetailDTO
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		l, lineErr := lineToDomain(dto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func (r *GormCartRepository) DeleteLines(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	result := r.db.WithContext(ctx).Where("id IN ?", raw).Delete(&CartDetailDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(ids)) {
		return errs.NewVersionIsInvalidError(
			"cart details",
			fmt.Errorf("deleted %d of %d lines, the cart changed concurrently", result.RowsAffected, len(ids)),
		)
	}
	return nil
}
