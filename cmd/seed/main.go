package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"order-desk/internal/config"
	"order-desk/internal/database"
	"order-desk/internal/model"
	"order-desk/internal/repository"

	"github.com/rs/zerolog"
)

// seed loads a small set of sample orders spread over the last few months,
// so the dashboard has something to chart.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return err
	}

	repo := repository.NewOrderRepository(pool, logger)
	orders, err := sampleOrders(time.Now().UTC())
	if err != nil {
		return err
	}

	for _, order := range orders {
		if err := insert(ctx, repo, order, logger); err != nil {
			return err
		}
	}

	fmt.Printf("Inserted %d sample orders\n", len(orders))
	return nil
}

type sample struct {
	daysAgo int
	status  string
	req     model.OrderRequest
}

var samples = []sample{
	{95, "Completed", model.OrderRequest{CustomerName: "Ana Lima", ContactMethod: "WhatsApp", ContactDetail: "+55 11 90000-0001", Product: "Chocolate cake", Price: "120", Deposit: "60"}},
	{80, "Completed", model.OrderRequest{CustomerName: "Bruno Costa", ContactMethod: "Instagram", ContactDetail: "@brunoc", Product: "Brigadeiro box", Price: "45.50"}},
	{62, "In Progress", model.OrderRequest{CustomerName: "Carla Dias", ContactMethod: "Phone", Product: "Wedding cake", Details: "Three tiers, white roses", Price: "850", Deposit: "400"}},
	{40, "Pending", model.OrderRequest{CustomerName: "Diego Alves", ContactMethod: "Email", ContactDetail: "diego@example.com", DeliveryAddress: "Rua das Flores 12", Product: "Cupcakes (24)", Price: "96", Deposit: "96"}},
	{21, "Pending", model.OrderRequest{CustomerName: "Elisa Rocha", ContactMethod: "WhatsApp", Product: "Carrot cake", Price: "70"}},
	{7, "In Progress", model.OrderRequest{CustomerName: "Fabio Nunes", ContactMethod: "Phone", Product: "Birthday cake", Details: "Name on top: Lia", Price: "150", Deposit: "50"}},
	{1, "Pending", model.OrderRequest{CustomerName: "Gabi Souza", ContactMethod: "Instagram", ContactDetail: "@gabis", Product: "Macarons (12)", Price: "38.90", Deposit: "10"}},
}

// sampleOrders validates every sample through the same rules the API uses.
func sampleOrders(now time.Time) ([]*model.Order, error) {
	orders := make([]*model.Order, 0, len(samples))
	for _, s := range samples {
		order, err := model.NewOrder(&s.req)
		if err != nil {
			return nil, fmt.Errorf("invalid sample order for %s: %w", s.req.CustomerName, err)
		}

		status := model.OrderStatus(s.status)
		if status != order.OrderStatus {
			order.OrderStatus = status
			order.Deposit, order.PaymentStatus = model.DerivePaymentStatus(order.Price, order.Deposit, status)
		}
		order.CreatedAt = now.AddDate(0, 0, -s.daysAgo)

		orders = append(orders, order)
	}
	return orders, nil
}

func insert(ctx context.Context, repo repository.OrderRepository, order *model.Order, logger zerolog.Logger) error {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := repo.Insert(ctx, tx, order); err != nil {
		return fmt.Errorf("failed to insert sample order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit sample order: %w", err)
	}

	logger.Debug().Int64("order_id", order.ID).Str("customer", order.CustomerName).Msg("sample order inserted")
	return nil
}
