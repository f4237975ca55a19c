package tables_test

import (
	"freshcatch_server/structs/tables"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()
	cases := []struct {
		from    tables.OrderStatus
		to      tables.OrderStatus
		allowed bool
	}{
		{tables.OrderStatusPending, tables.OrderStatusConfirmed, true},
		{tables.OrderStatusPending, tables.OrderStatusCancelled, true},
		{tables.OrderStatusPending, tables.OrderStatusPreparing, false},
		{tables.OrderStatusPending, tables.OrderStatusDelivered, false},

		{tables.OrderStatusConfirmed, tables.OrderStatusPreparing, true},
		{tables.OrderStatusConfirmed, tables.OrderStatusCancelled, true},
		{tables.OrderStatusConfirmed, tables.OrderStatusDelivered, false},
		{tables.OrderStatusConfirmed, tables.OrderStatusPending, false},

		{tables.OrderStatusPreparing, tables.OrderStatusOutForDelivery, true},
		{tables.OrderStatusPreparing, tables.OrderStatusCancelled, true},
		{tables.OrderStatusPreparing, tables.OrderStatusDelivered, false},

		// Once the courier is out, cancellation is no longer possible
		{tables.OrderStatusOutForDelivery, tables.OrderStatusDelivered, true},
		{tables.OrderStatusOutForDelivery, tables.OrderStatusCancelled, false},
		{tables.OrderStatusOutForDelivery, tables.OrderStatusPreparing, false},

		// Terminal states go nowhere
		{tables.OrderStatusDelivered, tables.OrderStatusPending, false},
		{tables.OrderStatusDelivered, tables.OrderStatusCancelled, false},
		{tables.OrderStatusDelivered, tables.OrderStatusDelivered, false},
		{tables.OrderStatusCancelled, tables.OrderStatusPending, false},
		{tables.OrderStatusCancelled, tables.OrderStatusConfirmed, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTransitions_UnknownStatus(t *testing.T) {
	t.Parallel()
	assert.False(t, tables.OrderStatus("shipped").CanTransitionTo(tables.OrderStatusDelivered))
}

func TestOrderStatusValid(t *testing.T) {
	t.Parallel()
	for _, s := range []tables.OrderStatus{
		tables.OrderStatusPending,
		tables.OrderStatusConfirmed,
		tables.OrderStatusPreparing,
		tables.OrderStatusOutForDelivery,
		tables.OrderStatusDelivered,
		tables.OrderStatusCancelled,
	} {
		assert.True(t, s.Valid(), "%s should be valid", s)
	}

	assert.False(t, tables.OrderStatus("shipped").Valid())
	assert.False(t, tables.OrderStatus("").Valid())
}
