package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/repo"
	"github.com/Skotchmaster/shop_admin/internal/transport"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

func normalizeOrder(req transport.OrderCreate) (transport.OrderCreate, error) {
	if req.TotalAmount == nil {
		return req, fmt.Errorf("%w: total_amount is required", ErrValidation)
	}
	if req.TotalAmount.IsNegative() {
		return req, fmt.Errorf("%w: total_amount must be >= 0", ErrValidation)
	}
	if strings.TrimSpace(req.Status) == "" {
		req.Status = models.OrderStatusPending
	}
	total := req.TotalAmount.Round(2)
	req.TotalAmount = &total
	return req, nil
}

// Create never touches product stock.
func (s *OrderService) Create(ctx context.Context, actor string, req transport.OrderCreate) (*models.Order, error) {
	req, err := normalizeOrder(req)
	if err != nil {
		return nil, err
	}
	actor = actorOrAnonymous(actor)

	order := &models.Order{
		UserID:      req.UserID,
		TotalAmount: *req.TotalAmount,
		Status:      req.Status,
	}
	err = s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateOrder(ctx, order); err != nil {
			return storeError(err)
		}
		return tx.AppendLog(ctx, actor, models.ActionAdd, models.TableOrders, order.ID, map[string]any{"user_id": order.UserID})
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, models.ActionAdd, models.TableOrders, order.ID, actor, order)
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx)
}

func (s *OrderService) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID)
}

// Update overwrites user, amount and status. created_at is preserved.
func (s *OrderService) Update(ctx context.Context, actor string, id uint, req transport.OrderCreate) (*models.Order, error) {
	req, err := normalizeOrder(req)
	if err != nil {
		return nil, err
	}
	actor = actorOrAnonymous(actor)

	var updated *models.Order
	err = s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		var err error
		updated, err = tx.UpdateOrder(ctx, id, func(o *models.Order) {
			o.UserID = req.UserID
			o.TotalAmount = *req.TotalAmount
			o.Status = req.Status
		})
		if err != nil {
			return rowError(err, models.TableOrders, id)
		}
		return tx.AppendLog(ctx, actor, models.ActionUpdate, models.TableOrders, id, map[string]any{"status": updated.Status})
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, models.ActionUpdate, models.TableOrders, id, actor, updated)
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, actor string, id uint) (bool, error) {
	actor = actorOrAnonymous(actor)
	var found bool
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		var err error
		found, err = tx.DeleteOrder(ctx, id)
		if err != nil {
			return storeError(err)
		}
		if !found {
			return nil
		}
		return tx.AppendLog(ctx, actor, models.ActionDelete, models.TableOrders, id, nil)
	})
	if err != nil {
		return false, err
	}
	if found {
		publish(ctx, s.Events, models.ActionDelete, models.TableOrders, id, actor, nil)
	}
	return found, nil
}
