package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/repo"
	"github.com/Skotchmaster/shop_admin/internal/transport"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
)

// ProductIndexer mirrors products into a full-text index.
type ProductIndexer interface {
	IndexProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
	SearchProducts(ctx context.Context, q string) ([]uint, error)
}

type ProductService struct {
	Repo    *repo.GormRepo
	Events  EventPublisher
	Indexer ProductIndexer
}

func validateProduct(req transport.ProductCreate) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price == nil {
		return fmt.Errorf("%w: price is required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Stock == nil {
		return fmt.Errorf("%w: stock is required", ErrValidation)
	}
	if *req.Stock < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, actor string, req transport.ProductCreate) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	actor = actorOrAnonymous(actor)

	product := &models.Product{
		SellerID:    req.SellerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Stock:       *req.Stock,
		Category:    req.Category,
	}
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateProduct(ctx, product); err != nil {
			return storeError(err)
		}
		return tx.AppendLog(ctx, actor, models.ActionAdd, models.TableProducts, product.ID, map[string]any{"name": product.Name})
	})
	if err != nil {
		return nil, err
	}

	s.index(ctx, product)
	publish(ctx, s.Events, models.ActionAdd, models.TableProducts, product.ID, actor, product)
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

// Search asks the index first and falls back to a store scan when the index
// is absent or failing.
func (s *ProductService) Search(ctx context.Context, q string) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.Repo.ListProducts(ctx)
	}
	if s.Indexer != nil {
		sctx, cancel := context.WithTimeout(ctx, outboundTimeout)
		ids, err := s.Indexer.SearchProducts(sctx, q)
		cancel()
		if err == nil {
			return s.Repo.ProductsByIDs(ctx, ids)
		}
		logging.FromContext(ctx).Warn("search_index_error", "query", q, "error", err)
	}
	return s.Repo.SearchProducts(ctx, q)
}

func (s *ProductService) Update(ctx context.Context, actor string, id uint, req transport.ProductCreate) (*models.Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	actor = actorOrAnonymous(actor)

	var updated *models.Product
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		var err error
		updated, err = tx.UpdateProduct(ctx, id, func(p *models.Product) {
			p.SellerID = req.SellerID
			p.Name = req.Name
			p.Description = req.Description
			p.Price = req.Price.Round(2)
			p.Stock = *req.Stock
			p.Category = req.Category
		})
		if err != nil {
			return rowError(err, models.TableProducts, id)
		}
		return tx.AppendLog(ctx, actor, models.ActionUpdate, models.TableProducts, id, map[string]any{"name": updated.Name})
	})
	if err != nil {
		return nil, err
	}

	s.index(ctx, updated)
	publish(ctx, s.Events, models.ActionUpdate, models.TableProducts, id, actor, updated)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, actor string, id uint) (bool, error) {
	actor = actorOrAnonymous(actor)
	var found bool
	err := s.Repo.Tx(ctx, func(tx *repo.GormRepo) error {
		var err error
		found, err = tx.DeleteProduct(ctx, id)
		if err != nil {
			return storeError(err)
		}
		if !found {
			return nil
		}
		return tx.AppendLog(ctx, actor, models.ActionDelete, models.TableProducts, id, nil)
	})
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	if s.Indexer != nil {
		ictx, cancel := context.WithTimeout(ctx, outboundTimeout)
		if err := s.Indexer.DeleteProduct(ictx, id); err != nil {
			logging.FromContext(ctx).Warn("unindex_product_error", "product_id", id, "error", err)
		}
		cancel()
	}
	publish(ctx, s.Events, models.ActionDelete, models.TableProducts, id, actor, nil)
	return true, nil
}

func (s *ProductService) index(ctx context.Context, p *models.Product) {
	if s.Indexer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, outboundTimeout)
	defer cancel()
	if err := s.Indexer.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("index_product_error", "product_id", p.ID, "error", err)
	}
}
