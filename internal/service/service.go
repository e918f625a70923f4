package service

import (
	"context"

	"order-desk/internal/model"
)

// OrderService defines operations for order management.
type OrderService interface {
	// Create validates the request, stores the optional image and inserts the order.
	Create(ctx context.Context, req *model.OrderRequest, image *model.ImageUpload) (*model.Order, error)

	// Update applies the request to an existing order, replacing its image when one is given.
	Update(ctx context.Context, id int64, req *model.OrderRequest, image *model.ImageUpload) (*model.Order, error)

	// Delete removes an order and releases its image.
	Delete(ctx context.Context, id int64) error

	// GetByID retrieves a single order.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// List returns one page of orders matching search, newest first.
	List(ctx context.Context, search string, page int) (*model.OrderPage, error)

	// ListAll returns every order newest first.
	ListAll(ctx context.Context) ([]model.Order, error)
}

// DashboardService defines the aggregate reporting operations.
type DashboardService interface {
	// Compute evaluates every dashboard figure over the whole order table.
	Compute(ctx context.Context) (*model.Dashboard, error)
}
