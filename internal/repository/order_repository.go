package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"order-desk/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const orderColumns = `
	id, customer_name, contact_method, contact_detail, delivery_address,
	product, details, price, deposit, image_reference,
	payment_status, order_status, created_at
`

// searchFilter matches $1 as a literal substring; the caller escapes LIKE wildcards.
const searchFilter = `
	WHERE $1::text = ''
	   OR customer_name ILIKE ('%' || $1 || '%')
	   OR product ILIKE ('%' || $1 || '%')
	   OR order_status ILIKE ('%' || $1 || '%')
`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Insert stores a new order within the provided transaction.
// A zero CreatedAt is filled in by the database.
func (r *orderRepository) Insert(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			customer_name, contact_method, contact_detail, delivery_address,
			product, details, price, deposit, image_reference,
			payment_status, order_status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, COALESCE($12::timestamptz, NOW()))
		RETURNING id, created_at
	`

	var createdAt *time.Time
	if !order.CreatedAt.IsZero() {
		createdAt = &order.CreatedAt
	}

	err := tx.QueryRow(ctx, query,
		order.CustomerName,
		order.ContactMethod,
		order.ContactDetail,
		order.DeliveryAddress,
		order.Product,
		order.Details,
		order.Price,
		order.Deposit,
		order.ImageReference,
		string(order.PaymentStatus),
		string(order.OrderStatus),
		createdAt,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_name", order.CustomerName).
			Msg("failed to insert order")
		return fmt.Errorf("failed to insert order: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Msg("order inserted successfully")

	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, r.notFoundOr(err, id, "failed to query order")
	}
	return &order, nil
}

// GetByIDForUpdate retrieves and row-locks an order within the provided transaction.
func (r *orderRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	order, err := scanOrder(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, r.notFoundOr(err, id, "failed to lock order")
	}
	return &order, nil
}

// Update replaces every mutable column of the order with the given ID.
func (r *orderRepository) Update(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET customer_name = $2,
			contact_method = $3,
			contact_detail = $4,
			delivery_address = $5,
			product = $6,
			details = $7,
			price = $8,
			deposit = $9,
			image_reference = $10,
			payment_status = $11,
			order_status = $12
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		order.ID,
		order.CustomerName,
		order.ContactMethod,
		order.ContactDetail,
		order.DeliveryAddress,
		order.Product,
		order.Details,
		order.Price,
		order.Deposit,
		order.ImageReference,
		string(order.PaymentStatus),
		string(order.OrderStatus),
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("order_id", order.ID).Msg("order not found for update")
		return model.ErrOrderNotFound
	}

	r.logger.Debug().Int64("order_id", order.ID).Msg("order updated successfully")

	return nil
}

// Delete removes the order with the given ID.
func (r *orderRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("order_id", id).Msg("order not found for delete")
		return model.ErrOrderNotFound
	}

	r.logger.Debug().Int64("order_id", id).Msg("order deleted successfully")

	return nil
}

// CountMatching counts orders matching search.
func (r *orderRepository) CountMatching(ctx context.Context, search string) (int, error) {
	query := `SELECT COUNT(*) FROM orders ` + searchFilter

	var count int
	if err := r.pool.QueryRow(ctx, query, escapeLike(search)).Scan(&count); err != nil {
		r.logger.Error().Err(err).Str("search", search).Msg("failed to count orders")
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// ListPage returns matching orders newest first.
func (r *orderRepository) ListPage(ctx context.Context, search string, offset, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ` + searchFilter + `
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, escapeLike(search), limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Str("search", search).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return r.collectOrders(rows)
}

// ListAll returns every order newest first.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query all orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return r.collectOrders(rows)
}

// SumByPaymentStatus sums one amount over orders with the given payment status.
func (r *orderRepository) SumByPaymentStatus(ctx context.Context, status model.PaymentStatus, field AmountField) (decimal.Decimal, error) {
	column, err := field.column()
	if err != nil {
		return decimal.Zero, err
	}

	query := fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0) FROM orders WHERE payment_status = $1`, column)

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, string(status)).Scan(&total); err != nil {
		r.logger.Error().Err(err).
			Str("payment_status", string(status)).
			Str("field", column).
			Msg("failed to sum orders by payment status")
		return decimal.Zero, fmt.Errorf("failed to sum %s by payment status: %w", column, err)
	}
	return total, nil
}

// SumPendingBalance sums price - deposit over orders not paid in full.
func (r *orderRepository) SumPendingBalance(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(price - deposit), 0)
		FROM orders
		WHERE payment_status <> $1
	`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, string(model.PaymentPaidInFull)).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to sum pending balance")
		return decimal.Zero, fmt.Errorf("failed to sum pending balance: %w", err)
	}
	return total, nil
}

// CountByOrderStatus counts orders per fulfilment stage, ordered by status name.
func (r *orderRepository) CountByOrderStatus(ctx context.Context) ([]model.StatusCount, error) {
	query := `
		SELECT order_status, COUNT(*)
		FROM orders
		GROUP BY order_status
		ORDER BY order_status
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders by status")
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.StatusCount, error) {
		var sc model.StatusCount
		var status string
		err := row.Scan(&status, &sc.Count)
		sc.Status = model.OrderStatus(status)
		return sc, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("error iterating status count rows")
		return nil, fmt.Errorf("error iterating status counts: %w", err)
	}
	return counts, nil
}

// MonthlyRevenue sums the price of paid-in-full orders per calendar month, oldest first.
func (r *orderRepository) MonthlyRevenue(ctx context.Context) ([]model.MonthlyRevenue, error) {
	query := `
		SELECT to_char(created_at, 'YYYY-MM') AS month, SUM(price)
		FROM orders
		WHERE payment_status = $1
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.pool.Query(ctx, query, string(model.PaymentPaidInFull))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query monthly revenue")
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}

	revenue, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.MonthlyRevenue, error) {
		var mr model.MonthlyRevenue
		err := row.Scan(&mr.Month, &mr.Total)
		return mr, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("error iterating monthly revenue rows")
		return nil, fmt.Errorf("error iterating monthly revenue: %w", err)
	}
	return revenue, nil
}

// DistinctOrderDates lists every calendar day with at least one order, ascending.
func (r *orderRepository) DistinctOrderDates(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT to_char(created_at, 'YYYY-MM-DD') AS day
		FROM orders
		ORDER BY day
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order dates")
		return nil, fmt.Errorf("failed to query order dates: %w", err)
	}

	dates, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		r.logger.Error().Err(err).Msg("error iterating order date rows")
		return nil, fmt.Errorf("error iterating order dates: %w", err)
	}
	return dates, nil
}

func (r *orderRepository) collectOrders(rows pgx.Rows) ([]model.Order, error) {
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) notFoundOr(err error, id int64, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Debug().Int64("order_id", id).Msg("order not found")
		return model.ErrOrderNotFound
	}
	r.logger.Error().Err(err).Int64("order_id", id).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

// scanOrder reads one row selected with orderColumns.
func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	var paymentStatus, orderStatus string

	err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.ContactMethod,
		&o.ContactDetail,
		&o.DeliveryAddress,
		&o.Product,
		&o.Details,
		&o.Price,
		&o.Deposit,
		&o.ImageReference,
		&paymentStatus,
		&orderStatus,
		&o.CreatedAt,
	)
	o.PaymentStatus = model.PaymentStatus(paymentStatus)
	o.OrderStatus = model.OrderStatus(orderStatus)
	return o, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in a search term match literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
