package model

import "github.com/shopspring/decimal"

// StatusCount is the number of orders in one fulfilment stage.
type StatusCount struct {
	Status OrderStatus
	Count  int
}

// MonthlyRevenue is the paid-in-full revenue for one calendar month (YYYY-MM).
type MonthlyRevenue struct {
	Month string
	Total decimal.Decimal
}

// StatusChart is the order status histogram as parallel label/count series.
type StatusChart struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// RevenueChart is the monthly revenue series, oldest month first.
type RevenueChart struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// Dashboard holds the aggregate figures reported over every stored order.
type Dashboard struct {
	TotalBilled  decimal.Decimal `json:"totalBilled"`
	TotalPending decimal.Decimal `json:"totalPending"`
	StatusChart  StatusChart     `json:"statusChart"`
	RevenueChart RevenueChart    `json:"revenueChart"`
	OrderDates   []string        `json:"orderDates"`
}
