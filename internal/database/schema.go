package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the DDL for the orders table. Amounts are unscaled NUMERIC so that
// stored values never round into a different payment status.
const Schema = `
	CREATE TABLE IF NOT EXISTS orders (
		id               BIGSERIAL PRIMARY KEY,
		customer_name    TEXT NOT NULL,
		contact_method   TEXT NOT NULL,
		contact_detail   TEXT,
		delivery_address TEXT,
		product          TEXT NOT NULL,
		details          TEXT,
		price            NUMERIC NOT NULL CHECK (price > 0),
		deposit          NUMERIC NOT NULL DEFAULT 0 CHECK (deposit >= 0 AND deposit <= price),
		image_reference  TEXT,
		payment_status   TEXT NOT NULL,
		order_status     TEXT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_orders_payment_status ON orders(payment_status);
`

// EnsureSchema creates the orders table and its indexes when they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply database schema")
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.Info().Msg("database schema is up to date")
	return nil
}
