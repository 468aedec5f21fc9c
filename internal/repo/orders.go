package repo

import (
	"context"

	"github.com/Skotchmaster/shop_admin/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	return r.DB.WithContext(ctx).Create(o).Error
}

func (r *GormRepo) ListOrders(ctx context.Context) ([]models.Order, error) {
	var items []models.Order
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var items []models.Order
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) UpdateOrder(ctx context.Context, id uint, apply func(*models.Order)) (*models.Order, error) {
	return updateByID(ctx, r.DB, id, apply)
}

func (r *GormRepo) DeleteOrder(ctx context.Context, id uint) (bool, error) {
	return deleteByID[models.Order](ctx, r.DB, id)
}
