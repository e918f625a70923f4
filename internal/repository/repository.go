package repository

import (
	"context"
	"fmt"

	"order-desk/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AmountField selects which order amount an aggregate sums.
type AmountField int

const (
	AmountPrice AmountField = iota
	AmountDeposit
)

// column maps the field onto its column; only whitelisted names reach SQL.
func (f AmountField) column() (string, error) {
	switch f {
	case AmountPrice:
		return "price", nil
	case AmountDeposit:
		return "deposit", nil
	default:
		return "", fmt.Errorf("unknown amount field %d", int(f))
	}
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Insert stores a new order within the provided transaction and fills in
	// its ID and CreatedAt.
	Insert(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by its ID.
	// Returns model.ErrOrderNotFound when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetByIDForUpdate retrieves and row-locks an order within the provided transaction.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Order, error)

	// Update replaces every mutable column of the order with the given ID.
	Update(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// Delete removes the order with the given ID.
	Delete(ctx context.Context, tx pgx.Tx, id int64) error

	// CountMatching counts orders whose customer name, product or order status
	// contains search, ignoring case. An empty search matches every order.
	CountMatching(ctx context.Context, search string) (int, error)

	// ListPage returns matching orders newest first.
	ListPage(ctx context.Context, search string, offset, limit int) ([]model.Order, error)

	// ListAll returns every order newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// SumByPaymentStatus sums one amount over orders with the given payment status.
	SumByPaymentStatus(ctx context.Context, status model.PaymentStatus, field AmountField) (decimal.Decimal, error)

	// SumPendingBalance sums price - deposit over orders not paid in full.
	SumPendingBalance(ctx context.Context) (decimal.Decimal, error)

	// CountByOrderStatus counts orders per fulfilment stage.
	CountByOrderStatus(ctx context.Context) ([]model.StatusCount, error)

	// MonthlyRevenue sums the price of paid-in-full orders per calendar month, oldest first.
	MonthlyRevenue(ctx context.Context) ([]model.MonthlyRevenue, error)

	// DistinctOrderDates lists every calendar day (YYYY-MM-DD) with at least one order, ascending.
	DistinctOrderDates(ctx context.Context) ([]string, error)
}
