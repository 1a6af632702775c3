// Package userrepo persists user accounts with GORM.
package userrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string `gorm:"index"`
	PasswordHash string
	Phone        string
	Address      string
	Active       bool
	RegisteredAt time.Time
	Token        string
	RoleIDs      pq.Int64Array `gorm:"column:role_ids;type:bigint[]"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Bytes(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Phone:        u.Phone(),
		Address:      u.Address(),
		Active:       u.Active(),
		RegisteredAt: u.RegisteredAt(),
		Token:        u.Token(),
		RoleIDs:      pq.Int64Array(u.RoleIDs()),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		user.Profile{Name: dto.Name, Email: dto.Email, Phone: dto.Phone, Address: dto.Address},
		dto.PasswordHash,
		dto.Token,
		dto.Active,
		dto.RegisteredAt,
		[]int64(dto.RoleIDs),
	)
}
