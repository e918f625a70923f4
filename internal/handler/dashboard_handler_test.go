package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"order-desk/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDashboardService is a mock implementation of DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Compute(ctx context.Context) (*model.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dashboard), args.Error(1)
}

func TestDashboardHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockDashboardService)
		handler := NewDashboardHandler(mockService, zerolog.Nop())

		mockService.On("Compute", mock.Anything).Return(&model.Dashboard{
			TotalBilled:  decimal.RequireFromString("150.50"),
			TotalPending: decimal.NewFromInt(40),
			StatusChart:  model.StatusChart{Labels: []string{"Pending"}, Data: []int{2}},
			RevenueChart: model.RevenueChart{Labels: []string{"2024-01"}, Data: []decimal.Decimal{decimal.NewFromInt(150)}},
			OrderDates:   []string{"2024-01-15"},
		}, nil)

		w := httptest.NewRecorder()
		handler.Get(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var got model.Dashboard
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.True(t, got.TotalBilled.Equal(decimal.RequireFromString("150.5")))
		assert.True(t, got.TotalPending.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, []string{"Pending"}, got.StatusChart.Labels)
		assert.Equal(t, []int{2}, got.StatusChart.Data)
		assert.Equal(t, []string{"2024-01"}, got.RevenueChart.Labels)
		assert.Equal(t, []string{"2024-01-15"}, got.OrderDates)
		mockService.AssertExpectations(t)
	})

	t.Run("Service failure", func(t *testing.T) {
		mockService := new(MockDashboardService)
		handler := NewDashboardHandler(mockService, zerolog.Nop())

		mockService.On("Compute", mock.Anything).Return(nil, errors.New("database error"))

		w := httptest.NewRecorder()
		handler.Get(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, model.ErrCodeInternalError, decodeError(t, w).Error)
	})
}
