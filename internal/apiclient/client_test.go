package apiclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/testenv"
	"github.com/Skotchmaster/shop_admin/internal/transport"
)

func login(t *testing.T) (*Client, string) {
	t.Helper()
	api := testenv.StartAPI(t)
	c := NewClient(api.URL+"/", 5*time.Second)
	res, err := c.Login(context.Background(), testenv.AdminEmail, testenv.AdminPassword)
	require.NoError(t, err)
	assert.Equal(t, testenv.AdminName, res.Name)
	return c, res.AccessToken
}

func TestLogin_BadCredentials(t *testing.T) {
	api := testenv.StartAPI(t)
	c := NewClient(api.URL, 5*time.Second)

	_, err := c.Login(context.Background(), testenv.AdminEmail, "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestClient_UserLifecycle(t *testing.T) {
	c, token := login(t)
	ctx := context.Background()

	u, err := c.CreateUser(ctx, token, transport.UserCreate{Name: "Ada", Email: "ada@example.com", Password: "pw", Role: models.RoleSeller})
	require.NoError(t, err)
	require.NotZero(t, u.ID)

	_, err = c.CreateUser(ctx, token, transport.UserCreate{Name: "Ada 2", Email: "ada@example.com", Password: "pw", Role: models.RoleSeller})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, StatusOf(err))

	updated, err := c.UpdateUser(ctx, token, u.ID, transport.UserUpdate{Name: "Ada L", Email: "ada@example.com", Role: models.RoleSeller})
	require.NoError(t, err)
	assert.Equal(t, "Ada L", updated.Name)

	_, err = c.UpdateUser(ctx, token, 999, transport.UserUpdate{Name: "X", Email: "x@example.com", Role: models.RoleSeller})
	assert.Equal(t, http.StatusNotFound, StatusOf(err))

	found, err := c.DeleteUser(ctx, token, u.ID)
	require.NoError(t, err)
	assert.True(t, found)
	found, err = c.DeleteUser(ctx, token, u.ID)
	require.NoError(t, err)
	assert.False(t, found)

	users, err := c.ListUsers(ctx, token)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestClient_ProductsOrdersLogs(t *testing.T) {
	c, token := login(t)
	ctx := context.Background()

	price, stock := decimal.RequireFromString("19.99"), 5
	p, err := c.CreateProduct(ctx, token, transport.ProductCreate{SellerID: 1, Name: "Lamp", Price: &price, Stock: &stock})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("19.99").Equal(p.Price))

	hits, err := c.SearchProducts(ctx, token, "lamp & co")
	require.NoError(t, err)
	assert.Empty(t, hits)
	hits, err = c.SearchProducts(ctx, token, "LAMP")
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	total := decimal.NewFromInt(3)
	_, err = c.CreateOrder(ctx, token, transport.OrderCreate{UserID: 7, TotalAmount: &total})
	require.NoError(t, err)
	orders, err := c.ListUserOrders(ctx, token, 7)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)

	logs, err := c.ListLogs(ctx, token)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, testenv.AdminName, logs[0].AdminName)
}

func TestClient_RequiresToken(t *testing.T) {
	api := testenv.StartAPI(t)
	c := NewClient(api.URL, 5*time.Second)

	_, err := c.ListUsers(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}
