package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/transport"
)

// Client talks to the shop API on behalf of the admin console.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// APIError carries the status and message of a non-2xx API response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status behind err, or 0 for transport failures.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Message string `json:"message"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &e) != nil || e.Message == "" {
			e.Message = strings.TrimSpace(string(raw))
		}
		if e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func idPath(prefix string, id uint) string {
	return prefix + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) Login(ctx context.Context, email, password string) (*transport.LoginResponse, error) {
	var res transport.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", transport.LoginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, http.MethodGet, "/users/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, req transport.UserCreate) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPost, "/users/", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id uint, req transport.UserUpdate) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, idPath("/users/", id), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id uint) (bool, error) {
	return c.delete(ctx, token, idPath("/users/", id))
}

func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/products/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchProducts(ctx context.Context, token, q string) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/products/search?q="+url.QueryEscape(q), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, req transport.ProductCreate) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, "/products/", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id uint, req transport.ProductCreate) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPut, idPath("/products/", id), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id uint) (bool, error) {
	return c.delete(ctx, token, idPath("/products/", id))
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUserOrders(ctx context.Context, token string, userID uint) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, idPath("/orders/user/", userID), token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, req transport.OrderCreate) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "/orders/", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrder(ctx context.Context, token string, id uint, req transport.OrderCreate) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodPut, idPath("/orders/", id), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, token string, id uint) (bool, error) {
	return c.delete(ctx, token, idPath("/orders/", id))
}

func (c *Client) ListLogs(ctx context.Context, token string) ([]models.AdminActivityLog, error) {
	var out []models.AdminActivityLog
	if err := c.do(ctx, http.MethodGet, "/admin-logs", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) delete(ctx context.Context, token, path string) (bool, error) {
	var res transport.DeleteResponse
	if err := c.do(ctx, http.MethodDelete, path, token, nil, &res); err != nil {
		return false, err
	}
	return res.Found, nil
}
