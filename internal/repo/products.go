package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/shop_admin/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("product_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ProductsByIDs keeps the order of ids and skips ids that no longer exist.
func (r *GormRepo) ProductsByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var found []models.Product
	if err := r.DB.WithContext(ctx).Where("product_id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]models.Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchProducts is a case-insensitive substring match over name,
// description and category.
func (r *GormRepo) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ? OR LOWER(COALESCE(category, '')) LIKE ?",
			pattern, pattern, pattern).
		Order("product_id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, apply func(*models.Product)) (*models.Product, error) {
	return updateByID(ctx, r.DB, id, apply)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) (bool, error) {
	return deleteByID[models.Product](ctx, r.DB, id)
}
