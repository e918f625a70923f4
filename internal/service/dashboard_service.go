package service

import (
	"context"
	"fmt"

	"order-desk/internal/model"
	"order-desk/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// dashboardService implements DashboardService.
type dashboardService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(orderRepo repository.OrderRepository, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "dashboard").Logger(),
	}
}

// Compute evaluates every dashboard figure over the whole order table.
// Nothing is cached between calls.
func (s *dashboardService) Compute(ctx context.Context) (*model.Dashboard, error) {
	billed, err := s.totalBilled(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.orderRepo.SumPendingBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	counts, err := s.orderRepo.CountByOrderStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	revenue, err := s.orderRepo.MonthlyRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	dates, err := s.orderRepo.DistinctOrderDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}
	if dates == nil {
		dates = []string{}
	}

	dashboard := &model.Dashboard{
		TotalBilled:  billed,
		TotalPending: pending,
		StatusChart:  statusChart(counts),
		RevenueChart: revenueChart(revenue),
		OrderDates:   dates,
	}

	s.logger.Debug().
		Str("total_billed", billed.String()).
		Str("total_pending", pending.String()).
		Int("order_days", len(dates)).
		Msg("dashboard computed")

	return dashboard, nil
}

// totalBilled is the full price of paid orders plus the deposits taken on
// partially paid ones. Pending orders contribute nothing.
func (s *dashboardService) totalBilled(ctx context.Context) (decimal.Decimal, error) {
	paid, err := s.orderRepo.SumByPaymentStatus(ctx, model.PaymentPaidInFull, repository.AmountPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	deposits, err := s.orderRepo.SumByPaymentStatus(ctx, model.PaymentDepositPaid, repository.AmountDeposit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	return paid.Add(deposits), nil
}

func statusChart(counts []model.StatusCount) model.StatusChart {
	chart := model.StatusChart{
		Labels: make([]string, 0, len(counts)),
		Data:   make([]int, 0, len(counts)),
	}
	for _, c := range counts {
		chart.Labels = append(chart.Labels, string(c.Status))
		chart.Data = append(chart.Data, c.Count)
	}
	return chart
}

func revenueChart(revenue []model.MonthlyRevenue) model.RevenueChart {
	chart := model.RevenueChart{
		Labels: make([]string, 0, len(revenue)),
		Data:   make([]decimal.Decimal, 0, len(revenue)),
	}
	for _, r := range revenue {
		chart.Labels = append(chart.Labels, r.Month)
		chart.Data = append(chart.Data, r.Total)
	}
	return chart
}
