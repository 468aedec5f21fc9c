package console

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/transport"
)

const otherCategory = "__other__"

var defaultCategories = []string{"Electronics", "Clothing", "Home", "Books", "Toys", "Sports"}

type productsData struct {
	Products      []models.Product
	Sellers       []models.User
	SellerNames   map[uint]string
	Categories    []string
	Query         string
	Selected      *models.Product
	ConfirmDelete *models.Product
}

func (h *Console) ProductsPage(c echo.Context) error {
	s := sessionFrom(c)
	snap, err := h.load(c, s)
	if err != nil {
		return h.loadFailure(c, s, err)
	}

	data := productsData{
		Products:      snap.Products,
		Sellers:       snap.Users,
		SellerNames:   snap.userNames(),
		Categories:    categories(snap.Products),
		Query:         strings.TrimSpace(c.QueryParam("q")),
		Selected:      snap.product(queryID(c, "edit")),
		ConfirmDelete: snap.product(queryID(c, "delete")),
	}
	if data.Query != "" {
		hits, err := h.api.SearchProducts(c.Request().Context(), s.Token, data.Query)
		if err != nil {
			return h.loadFailure(c, s, err)
		}
		data.Products = hits
	}
	return h.page(c, s, "products.html", "Products", "products", data)
}

// categories merges the built-in list with categories already in use.
func categories(products []models.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range defaultCategories {
		seen[c] = true
		out = append(out, c)
	}
	var extra []string
	for _, p := range products {
		if p.Category != nil && *p.Category != "" && !seen[*p.Category] {
			seen[*p.Category] = true
			extra = append(extra, *p.Category)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func productForm(c echo.Context) (transport.ProductCreate, error) {
	var req transport.ProductCreate

	seller, ok := formID(c, "seller_id")
	if !ok {
		return req, fmt.Errorf("choose a seller")
	}
	req.SellerID = seller

	req.Name = strings.TrimSpace(c.FormValue("name"))
	if req.Name == "" {
		return req, fmt.Errorf("name is required")
	}
	req.Description = optional(strings.TrimSpace(c.FormValue("description")))

	price, err := decimal.NewFromString(strings.TrimSpace(c.FormValue("price")))
	if err != nil {
		return req, fmt.Errorf("price must be a number")
	}
	req.Price = &price

	stock, err := strconv.Atoi(strings.TrimSpace(c.FormValue("stock")))
	if err != nil {
		return req, fmt.Errorf("stock must be a whole number")
	}
	req.Stock = &stock

	category := c.FormValue("category")
	if category == otherCategory {
		category = strings.TrimSpace(c.FormValue("category_other"))
	}
	req.Category = optional(category)
	return req, nil
}

func (h *Console) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	s := sessionFrom(c)

	req, err := productForm(c)
	if err != nil {
		h.flash(ctx, s, "error", err.Error())
		return c.Redirect(http.StatusSeeOther, "/products")
	}

	p, err := h.api.CreateProduct(ctx, s.Token, req)
	if err != nil {
		return h.apiFailure(c, s, "/products", err)
	}
	h.flash(ctx, s, "success", fmt.Sprintf("Product %q created (id %d)", p.Name, p.ID))
	return c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Console) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	s := sessionFrom(c)

	id, ok := pathID(c)
	if !ok {
		h.flash(ctx, s, "error", "Invalid product id")
		return c.Redirect(http.StatusSeeOther, "/products")
	}
	req, err := productForm(c)
	if err != nil {
		h.flash(ctx, s, "error", err.Error())
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/products?edit=%d", id))
	}

	p, err := h.api.UpdateProduct(ctx, s.Token, id, req)
	if err != nil {
		return h.apiFailure(c, s, "/products", err)
	}
	h.flash(ctx, s, "success", fmt.Sprintf("Product %q updated", p.Name))
	return c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Console) DeleteProduct(c echo.Context) error {
	return h.deleteEntity(c, "/products", "Product", func(id uint) (bool, error) {
		return h.api.DeleteProduct(c.Request().Context(), sessionFrom(c).Token, id)
	})
}
