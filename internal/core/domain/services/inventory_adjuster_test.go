package services_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoLineOrder(t *testing.T) *order.Order {
	t.Helper()
	l1, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 3, kernel.MustMoney("30"))
	require.NoError(t, err)
	l2, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 1, kernel.MustMoney("4"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "a", "p", []order.Line{l1, l2}, time.Now())
	require.NoError(t, err)
	return o
}

func TestInventoryAdjuster_Adjustments(t *testing.T) {
	o := twoLineOrder(t)

	tests := []struct {
		trigger   services.InventoryTrigger
		reached   order.Status
		wantLines int
	}{
		{services.TriggerOnComplete, order.Completed, 2},
		{services.TriggerOnComplete, order.Delivering, 0},
		{services.TriggerOnDeliver, order.Delivering, 2},
		{services.TriggerOnDeliver, order.Completed, 0},
		{services.TriggerOnBoth, order.Delivering, 2},
		{services.TriggerOnBoth, order.Completed, 2},
		{services.TriggerOnBoth, order.Cancelled, 0},
		{services.TriggerOnComplete, order.Cancelled, 0},
	}

	for _, tt := range tests {
		t.Run(tt.trigger.String()+"/"+tt.reached.String(), func(t *testing.T) {
			adj := services.NewInventoryAdjuster(tt.trigger).Adjustments(o, tt.reached)
			assert.Len(t, adj, tt.wantLines)
		})
	}

	t.Run("units equal line quantity", func(t *testing.T) {
		adj := services.NewInventoryAdjuster(services.TriggerOnComplete).Adjustments(o, order.Completed)

		lines := o.Lines()
		require.Len(t, adj, 2)
		assert.True(t, adj[0].ProductID.IsEqual(lines[0].ProductID()))
		assert.Equal(t, 3, adj[0].Units)
		assert.Equal(t, 1, adj[1].Units)
	})
}

func TestParseInventoryTrigger(t *testing.T) {
	for in, want := range map[string]services.InventoryTrigger{
		"":         services.TriggerOnComplete,
		"complete": services.TriggerOnComplete,
		"deliver":  services.TriggerOnDeliver,
		"both":     services.TriggerOnBoth,
	} {
		got, err := services.ParseInventoryTrigger(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := services.ParseInventoryTrigger("never")
	require.Error(t, err)
}
