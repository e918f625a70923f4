package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"order-desk/internal/config"
	"order-desk/internal/database"
	"order-desk/internal/model"
	"order-desk/internal/repository"
	"order-desk/internal/service"

	"github.com/olekukonko/tablewriter"
)

// report prints the dashboard figures as plain tables.
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

	dashboard, err := service.NewDashboardService(repository.NewOrderRepository(pool, logger), logger).Compute(ctx)
	if err != nil {
		return err
	}

	return render(os.Stdout, dashboard)
}

func render(w io.Writer, d *model.Dashboard) error {
	totals := tablewriter.NewWriter(w)
	totals.Header("Figure", "Amount")
	if err := totals.Append([]string{"Total billed", d.TotalBilled.StringFixed(2)}); err != nil {
		return err
	}
	if err := totals.Append([]string{"Total pending", d.TotalPending.StringFixed(2)}); err != nil {
		return err
	}
	if err := totals.Render(); err != nil {
		return err
	}

	statuses := tablewriter.NewWriter(w)
	statuses.Header("Order status", "Orders")
	for i, label := range d.StatusChart.Labels {
		if err := statuses.Append([]string{label, strconv.Itoa(d.StatusChart.Data[i])}); err != nil {
			return err
		}
	}
	if err := statuses.Render(); err != nil {
		return err
	}

	revenue := tablewriter.NewWriter(w)
	revenue.Header("Month", "Revenue")
	for i, month := range d.RevenueChart.Labels {
		if err := revenue.Append([]string{month, d.RevenueChart.Data[i].StringFixed(2)}); err != nil {
			return err
		}
	}
	if err := revenue.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Days with orders: %d\n", len(d.OrderDates))
	return err
}
