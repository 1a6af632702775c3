package order_test

import (
	"testing"

	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Values(t *testing.T) {
	assert.Equal(t, 0, int(order.Pending))
	assert.Equal(t, 1, int(order.Delivering))
	assert.Equal(t, 2, int(order.Completed))
	assert.Equal(t, 3, int(order.Cancelled))
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Delivering, order.Completed, order.Cancelled} {
		require.NoError(t, s.Validate(), s.String())
	}

	require.Error(t, order.Status(-1).Validate())
	require.Error(t, order.Status(4).Validate())
	assert.Equal(t, "Unknown", order.Status(4).String())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Delivering.IsTerminal())
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}

func TestStatus_Apply(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		action  order.Action
		policy  order.TransitionPolicy
		want    order.Status
		wantErr bool
	}{
		{"pending deliver", order.Pending, order.ActionDeliver, order.Permissive, order.Delivering, false},
		{"pending success permissive", order.Pending, order.ActionMarkSuccess, order.Permissive, order.Completed, false},
		{"pending success strict", order.Pending, order.ActionMarkSuccess, order.Strict, 0, true},
		{"pending cancel", order.Pending, order.ActionCancel, order.Strict, order.Cancelled, false},
		{"delivering success strict", order.Delivering, order.ActionMarkSuccess, order.Strict, order.Completed, false},
		{"delivering deliver again", order.Delivering, order.ActionDeliver, order.Permissive, 0, true},
		{"delivering cancel", order.Delivering, order.ActionCancel, order.Permissive, order.Cancelled, false},
		{"delivering deliver strict", order.Delivering, order.ActionDeliver, order.Strict, 0, true},
		{"completed cancel", order.Completed, order.ActionCancel, order.Permissive, 0, true},
		{"completed deliver", order.Completed, order.ActionDeliver, order.Permissive, 0, true},
		{"cancelled deliver", order.Cancelled, order.ActionDeliver, order.Permissive, 0, true},
		{"cancelled success", order.Cancelled, order.ActionMarkSuccess, order.Permissive, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Apply(tt.action, tt.policy)

			if tt.wantErr {
				require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown action", func(t *testing.T) {
		_, err := order.Pending.Apply(order.Action(42), order.Permissive)
		require.Error(t, err)
		assert.NotErrorIs(t, err, order.ErrTransitionNotAllowed)
	})
}

func TestParseTransitionPolicy(t *testing.T) {
	p, err := order.ParseTransitionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, order.Permissive, p)

	p, err = order.ParseTransitionPolicy("strict")
	require.NoError(t, err)
	assert.Equal(t, order.Strict, p)
	assert.Equal(t, "strict", p.String())

	_, err = order.ParseTransitionPolicy("lenient")
	require.Error(t, err)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "deliver", order.ActionDeliver.String())
	assert.Equal(t, "mark_success", order.ActionMarkSuccess.String())
	assert.Equal(t, "cancel", order.ActionCancel.String())
}
