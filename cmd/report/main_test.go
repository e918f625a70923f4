package main

import (
	"bytes"
	"testing"

	"order-desk/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	d := &model.Dashboard{
		TotalBilled:  decimal.RequireFromString("350"),
		TotalPending: decimal.RequireFromString("80.5"),
		StatusChart: model.StatusChart{
			Labels: []string{"Completed", "Pending"},
			Data:   []int{2, 3},
		},
		RevenueChart: model.RevenueChart{
			Labels: []string{"2024-01"},
			Data:   []decimal.Decimal{decimal.RequireFromString("150")},
		},
		OrderDates: []string{"2024-01-05", "2024-01-09"},
	}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, d))

	out := buf.String()
	for _, want := range []string{"350.00", "80.50", "Completed", "2024-01", "150.00", "Days with orders: 2"} {
		assert.Contains(t, out, want)
	}
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, &model.Dashboard{}))
	assert.Contains(t, buf.String(), "0.00")
	assert.Contains(t, buf.String(), "Days with orders: 0")
}
