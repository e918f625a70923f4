package integration

import (
	"context"
	"sync"
	"testing"

	"order-desk/internal/assets"
	"order-desk/internal/model"
	"order-desk/internal/repository"
	"order-desk/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_ConcurrentUpdates_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	CleanupDB(t, testDB.Pool)

	ctx := context.Background()
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)
	svc := service.NewOrderService(repo, assets.NewDisabledStore(), 10, logger)

	order, err := svc.Create(ctx, &model.OrderRequest{
		CustomerName:  "Dora",
		ContactMethod: "Phone",
		Product:       "Wedding cake",
		Price:         "300",
	}, nil)
	require.NoError(t, err)

	deposits := []string{"50", "100", "150", "200", "250", "300"}

	var wg sync.WaitGroup
	errs := make(chan error, len(deposits))
	for _, deposit := range deposits {
		wg.Add(1)
		go func(deposit string) {
			defer wg.Done()
			_, err := svc.Update(ctx, order.ID, &model.OrderRequest{
				CustomerName:  "Dora",
				ContactMethod: "Phone",
				Product:       "Wedding cake",
				Price:         "300",
				Deposit:       deposit,
			}, nil)
			errs <- err
		}(deposit)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	// Whichever write won, the stored row must be internally consistent.
	stored, err := svc.GetByID(ctx, order.ID)
	require.NoError(t, err)

	wantDeposit, wantStatus := model.DerivePaymentStatus(stored.Price, stored.Deposit, stored.OrderStatus)
	assert.True(t, wantDeposit.Equal(stored.Deposit))
	assert.Equal(t, wantStatus, stored.PaymentStatus)
	assert.True(t, stored.Deposit.GreaterThanOrEqual(decimal.NewFromInt(50)))
}

func TestOrderService_DeleteMissing_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	CleanupDB(t, testDB.Pool)

	ctx := context.Background()
	logger := zerolog.Nop()
	svc := service.NewOrderService(repository.NewOrderRepository(testDB.Pool, logger), assets.NewDisabledStore(), 10, logger)

	err := svc.Delete(ctx, 999)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)

	_, err = svc.Update(ctx, 999, &model.OrderRequest{CustomerName: "X", ContactMethod: "Y", Product: "Z", Price: "1"}, nil)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}
