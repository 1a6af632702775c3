package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	for _, input := range []string{"0", "10", "10.5", "10.50", "10.500", "999999999999.99"} {
		m, err := kernel.NewMoney(decimal.RequireFromString(input))
		require.NoError(t, err, input)
		assert.True(t, m.Decimal().Equal(decimal.RequireFromString(input)), input)
	}

	for _, input := range []string{"-0.01", "0.005", "10.001", "1.999"} {
		_, err := kernel.NewMoney(decimal.RequireFromString(input))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, input)
	}
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := kernel.MoneyFromFloat(10.1)
	require.NoError(t, err)
	assert.Equal(t, "10.10", m.String())

	_, err = kernel.MoneyFromFloat(0.005)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMoney_SumMatchesStoredParts(t *testing.T) {
	parts := []string{"0.01", "19.99", "4.50"}

	total := kernel.Zero()
	stored := decimal.Zero
	for _, p := range parts {
		m := kernel.MustMoney(p)
		total = total.Add(m)
		stored = stored.Add(m.Decimal().Round(kernel.Cents))
	}

	assert.True(t, total.Decimal().Equal(total.Decimal().Round(kernel.Cents)))
	assert.True(t, total.Decimal().Equal(stored))
	assert.Equal(t, "24.50", total.String())
}

func TestMoney_IsEqual(t *testing.T) {
	assert.True(t, kernel.MustMoney("10").IsEqual(kernel.MustMoney("10.00")))
	assert.False(t, kernel.MustMoney("10").IsEqual(kernel.MustMoney("10.01")))
	assert.Panics(t, func() { kernel.MustMoney("0.001") })
}
