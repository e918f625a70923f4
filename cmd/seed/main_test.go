package main

import (
	"testing"
	"time"

	"order-desk/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleOrders(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	orders, err := sampleOrders(now)
	require.NoError(t, err)
	require.Len(t, orders, len(samples))

	for i, order := range orders {
		assert.Equal(t, now.AddDate(0, 0, -samples[i].daysAgo), order.CreatedAt)
		assert.True(t, order.Deposit.LessThanOrEqual(order.Price), order.CustomerName)

		deposit, payment := model.DerivePaymentStatus(order.Price, order.Deposit, order.OrderStatus)
		assert.True(t, deposit.Equal(order.Deposit), order.CustomerName)
		assert.Equal(t, payment, order.PaymentStatus, order.CustomerName)
	}

	assert.Equal(t, model.OrderCompleted, orders[0].OrderStatus)
	assert.Equal(t, model.PaymentPaidInFull, orders[0].PaymentStatus)
	assert.Equal(t, model.PaymentPending, orders[4].PaymentStatus)
}
