package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"order-desk/internal/assets"
	"order-desk/internal/model"
	"order-desk/internal/pagination"
	"order-desk/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	store     assets.Store
	pageSize  int
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	store assets.Store,
	pageSize int,
	logger zerolog.Logger,
) OrderService {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	return &orderService{
		orderRepo: orderRepo,
		store:     store,
		pageSize:  pageSize,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Create validates the request, stores the optional image and inserts the order.
// A failed upload leaves the order without an image instead of failing it.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest, image *model.ImageUpload) (*model.Order, error) {
	order, err := model.NewOrder(req)
	if err != nil {
		s.logger.Debug().Err(err).Msg("order rejected by validation")
		return nil, err
	}

	// Phase 1: external side effect, outcome captured as a value.
	uploaded := s.uploadImage(ctx, image)
	order.ImageReference = uploaded

	// Phase 2: transactional write.
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.releaseImage(ctx, uploaded)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
			s.releaseImage(ctx, uploaded)
		}
	}()

	if err = s.orderRepo.Insert(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Str("payment_status", string(order.PaymentStatus)).
		Bool("has_image", order.ImageReference != nil).
		Msg("order created successfully")

	return order, nil
}

// Update applies the request to an existing order under a row lock.
// A new image replaces the old one only once the update has committed.
func (s *orderService) Update(ctx context.Context, id int64, req *model.OrderRequest, image *model.ImageUpload) (*model.Order, error) {
	// Phase 1: external side effect, outcome captured as a value.
	uploaded := s.uploadImage(ctx, image)

	// Phase 2: transactional read-modify-write.
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.releaseImage(ctx, uploaded)
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	// Ensure transaction is rolled back on error and the unused upload released
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
			s.releaseImage(ctx, uploaded)
		}
	}()

	current, err := s.orderRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	updated, err := current.Apply(req)
	if err != nil {
		s.logger.Debug().Err(err).Int64("order_id", id).Msg("order update rejected by validation")
		return nil, err
	}
	if uploaded != nil {
		updated.ImageReference = uploaded
	}

	if err = s.orderRepo.Update(ctx, tx, updated); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if uploaded != nil && current.ImageReference != nil && *current.ImageReference != *uploaded {
		s.releaseImage(ctx, current.ImageReference)
	}

	s.logger.Info().
		Int64("order_id", id).
		Str("payment_status", string(updated.PaymentStatus)).
		Str("order_status", string(updated.OrderStatus)).
		Msg("order updated successfully")

	return updated, nil
}

// Delete removes an order. Its image is released first; a failed release is
// logged and never blocks the delete.
func (s *orderService) Delete(ctx context.Context, id int64) error {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	current, err := s.orderRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	s.releaseImage(ctx, current.ImageReference)

	if err = s.orderRepo.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to commit transaction")
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.logger.Info().Int64("order_id", id).Msg("order deleted successfully")

	return nil
}

// GetByID retrieves a single order.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrOrderNotFound) {
			s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		}
		return nil, err
	}
	return order, nil
}

// List returns one page of orders matching search, newest first.
// Pages past the end are empty rather than an error.
func (s *orderService) List(ctx context.Context, search string, page int) (*model.OrderPage, error) {
	search = strings.TrimSpace(search)
	if !model.ValidText(search) {
		return nil, &model.ValidationError{Errors: []string{model.MsgSearchInvalid}}
	}

	total, err := s.orderRepo.CountMatching(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	plan := pagination.Plan(total, page, s.pageSize)

	orders := []model.Order{}
	if plan.Offset < total {
		orders, err = s.orderRepo.ListPage(ctx, search, plan.Offset, plan.Limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}
	}

	s.logger.Debug().
		Str("search", search).
		Int("page", plan.Page).
		Int("total_items", total).
		Int("returned", len(orders)).
		Msg("orders listed")

	return &model.OrderPage{
		Orders:     orders,
		Search:     search,
		Page:       plan.Page,
		PageSize:   plan.PageSize,
		TotalItems: plan.TotalItems,
		TotalPages: plan.TotalPages,
	}, nil
}

// ListAll returns every order newest first.
func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// uploadImage stores image and returns its reference. Any failure is logged
// and yields nil.
func (s *orderService) uploadImage(ctx context.Context, image *model.ImageUpload) *string {
	if image == nil {
		return nil
	}

	ref, err := s.store.Upload(ctx, image)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("filename", image.Filename).
			Msg("image upload failed, continuing without image")
		return nil
	}

	s.logger.Debug().Str("image_reference", ref).Msg("image uploaded")
	return &ref
}

// releaseImage deletes the asset behind ref. Any failure is logged and ignored.
func (s *orderService) releaseImage(ctx context.Context, ref *string) {
	if ref == nil || *ref == "" {
		return
	}

	assetID, ok := assets.ExtractAssetID(*ref)
	if !ok {
		s.logger.Warn().Str("image_reference", *ref).Msg("image reference has no asset id, skipping delete")
		return
	}

	if err := s.store.Delete(ctx, assetID); err != nil {
		s.logger.Warn().
			Err(err).
			Str("asset_id", assetID).
			Msg("failed to delete image asset")
		return
	}

	s.logger.Debug().Str("asset_id", assetID).Msg("image asset deleted")
}
