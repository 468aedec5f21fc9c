package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_admin/internal/middleware/auth"
	"github.com/Skotchmaster/shop_admin/internal/service"
	"github.com/Skotchmaster/shop_admin/internal/transport"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
)

type ProductsHTTP struct {
	Svc *service.ProductService
}

func (h *ProductsHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.create")

	var req transport.ProductCreate
	if err := bindValid(c, l, "create_product", &req); err != nil {
		return err
	}

	product, err := h.Svc.Create(ctx, auth.Actor(c), req)
	if err != nil {
		return fail(l, "create_product", err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductsHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		return fail(l, "list_products", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductsHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.search")

	items, err := h.Svc.Search(ctx, c.QueryParam("q"))
	if err != nil {
		return fail(l, "search_products", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductsHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.update")

	id, err := parseID(c, l, "update_product")
	if err != nil {
		return err
	}
	var req transport.ProductCreate
	if err := bindValid(c, l, "update_product", &req); err != nil {
		return err
	}

	product, err := h.Svc.Update(ctx, auth.Actor(c), id, req)
	if err != nil {
		return fail(l, "update_product", err)
	}

	l.Info("update_product_success", "product_id", id)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductsHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.delete")

	id, err := parseID(c, l, "delete_product")
	if err != nil {
		return err
	}

	found, err := h.Svc.Delete(ctx, auth.Actor(c), id)
	if err != nil {
		return fail(l, "delete_product", err)
	}

	l.Info("delete_product_success", "product_id", id, "found", found)
	return c.JSON(http.StatusOK, transport.DeleteResponse{Deleted: true, Found: found})
}
