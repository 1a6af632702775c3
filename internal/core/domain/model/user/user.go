package user

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// DefaultRoleID is the customer role every provisioned account receives.
const DefaultRoleID int64 = 1

// ErrUserIsNotConstructed is returned when a User was not built by NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a storefront account. Checkout only reads users, except for guest
// checkout which provisions a new one.
type User struct {
	id           kernel.UUID
	name         string
	email        string
	passwordHash string
	phone        string
	address      string
	active       bool
	registeredAt time.Time
	token        string
	roleIDs      []int64

	isConstructed bool
}

// Profile carries the descriptive fields of a new account.
type Profile struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// NewUser creates an active account with the default role.
func NewUser(id kernel.UUID, p Profile, passwordHash, token string, registeredAt time.Time) (*User, error) {
	return RestoreUser(id, p, passwordHash, token, true, registeredAt, []int64{DefaultRoleID})
}

// RestoreUser rebuilds an account loaded from storage.
func RestoreUser(
	id kernel.UUID,
	p Profile,
	passwordHash string,
	token string,
	active bool,
	registeredAt time.Time,
	roleIDs []int64,
) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(p.Email)
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	roles := make([]int64, len(roleIDs))
	copy(roles, roleIDs)

	return &User{
		id:            id,
		name:          p.Name,
		email:         email,
		passwordHash:  passwordHash,
		phone:         p.Phone,
		address:       p.Address,
		active:        active,
		registeredAt:  registeredAt,
		token:         token,
		roleIDs:       roles,
		isConstructed: true,
	}, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID         { return u.id }
func (u *User) Name() string            { return u.name }
func (u *User) Email() string           { return u.email }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) Phone() string           { return u.phone }
func (u *User) Address() string         { return u.address }
func (u *User) Active() bool            { return u.active }
func (u *User) RegisteredAt() time.Time { return u.registeredAt }
func (u *User) Token() string           { return u.token }

func (u *User) RoleIDs() []int64 {
	roles := make([]int64, len(u.roleIDs))
	copy(roles, u.roleIDs)
	return roles
}
