package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	all := []OrderStatus{OrderPending, OrderPaid, OrderCheckedIn, OrderCompleted, OrderCancelled}

	allowed := map[OrderStatus][]OrderStatus{
		OrderPending:   {OrderPaid, OrderCancelled},
		OrderPaid:      {OrderCheckedIn, OrderCancelled},
		OrderCheckedIn: {OrderCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransition(to, true), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatus_PaidCancelNeedsCancellable(t *testing.T) {
	assert.False(t, OrderPaid.CanTransition(OrderCancelled, false))
	assert.True(t, OrderPending.CanTransition(OrderCancelled, false))
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderCompleted.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPaid.Terminal())
}
