package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// GuestPlaceholderPassword is hashed into every provisioned guest account.
// Guests are expected to reset it before signing in.
const GuestPlaceholderPassword = "123@qtu"

// GuestAccountPolicy decides what happens when a guest checks out with an email
// that already has an account.
type GuestAccountPolicy int

const (
	// AlwaysCreate provisions a new account and cart on every guest checkout.
	AlwaysCreate GuestAccountPolicy = iota
	// ReuseExisting attaches the order to the oldest account with that email.
	ReuseExisting
)

func ParseGuestAccountPolicy(s string) (GuestAccountPolicy, error) {
	switch s {
	case "", "always_create":
		return AlwaysCreate, nil
	case "reuse_existing":
		return ReuseExisting, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("guest account policy is invalid", fmt.Errorf("%q is not supported", s))
	}
}

func (p GuestAccountPolicy) String() string {
	if p == ReuseExisting {
		return "reuse_existing"
	}
	return "always_create"
}

// GuestProvisioner creates the account and empty cart behind a guest checkout.
// It writes through the repositories it is given, so the caller decides the
// transaction; any failure must roll the whole checkout back.
type GuestProvisioner struct {
	policy GuestAccountPolicy
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
}

func NewGuestProvisioner(policy GuestAccountPolicy, hasher ports.PasswordHasher, tokens ports.TokenIssuer) (*GuestProvisioner, error) {
	if hasher == nil {
		return nil, errs.NewValueIsRequiredError("hasher")
	}
	if tokens == nil {
		return nil, errs.NewValueIsRequiredError("tokens")
	}
	return &GuestProvisioner{policy: policy, hasher: hasher, tokens: tokens}, nil
}

func (p *GuestProvisioner) Policy() GuestAccountPolicy {
	return p.policy
}

// Provision returns the account the guest order belongs to.
func (p *GuestProvisioner) Provision(
	ctx context.Context,
	users ports.UserRepository,
	carts ports.CartRepository,
	email string,
	guest cart.GuestCart,
	now time.Time,
) (*user.User, error) {
	if p.policy == ReuseExisting {
		existing, err := users.FindByEmail(ctx, email)
		switch {
		case err == nil:
			return existing, nil
		case !errors.Is(err, errs.ErrObjectNotFound):
			return nil, fmt.Errorf("look up guest account: %w", err)
		}
	}

	hash, err := p.hasher.Hash(GuestPlaceholderPassword)
	if err != nil {
		return nil, fmt.Errorf("hash guest password: %w", err)
	}
	token, err := p.tokens.Issue(email)
	if err != nil {
		return nil, fmt.Errorf("issue guest token: %w", err)
	}

	u, err := user.NewUser(kernel.NewUUID(), user.Profile{
		Name:    guest.Name,
		Email:   email,
		Phone:   guest.Phone,
		Address: guest.Address,
	}, hash, token, now)
	if err != nil {
		return nil, err
	}
	if err = users.Add(ctx, u); err != nil {
		return nil, fmt.Errorf("save guest account: %w", err)
	}

	c, err := cart.NewCart(kernel.NewUUID(), u.ID(), u.Address(), u.Phone())
	if err != nil {
		return nil, err
	}
	if err = carts.Add(ctx, c); err != nil {
		return nil, fmt.Errorf("save guest cart: %w", err)
	}

	return u, nil
}
