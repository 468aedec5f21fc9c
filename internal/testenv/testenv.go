// Package testenv starts a full API stack over in-memory SQLite for tests
// of packages that talk to the API over HTTP.
package testenv

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/shop_admin/internal/hash"
	"github.com/Skotchmaster/shop_admin/internal/httpserver"
	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/repo"
	"github.com/Skotchmaster/shop_admin/internal/service"
	"github.com/Skotchmaster/shop_admin/internal/transport"
	pkgdb "github.com/Skotchmaster/shop_admin/pkg/db"
	"github.com/Skotchmaster/shop_admin/pkg/logging"
)

const (
	AdminName     = "Root Admin"
	AdminEmail    = "root@example.com"
	AdminPassword = "Temp@1234"
)

type API struct {
	URL    string
	Repo   *repo.GormRepo
	Secret []byte
}

// StartAPI serves the API on an httptest server with one admin account.
func StartAPI(t testing.TB) *API {
	t.Helper()
	hash.Cost = bcrypt.MinCost

	ctx := context.Background()
	db, err := pkgdb.Open(ctx, "sqlite::memory:")
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	r := repo.New(db)

	secret := []byte("testenv-secret")
	userSvc := &service.UserService{Repo: r}
	_, err = userSvc.Create(ctx, "bootstrap", transport.UserCreate{
		Name: AdminName, Email: AdminEmail, Password: AdminPassword, Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	e := httpserver.NewEcho(logging.NewWithWriter(io.Discard, "error"), nil)
	httpserver.Register(e, &httpserver.Deps{
		Users:        &httpserver.UsersHTTP{Svc: userSvc},
		Products:     &httpserver.ProductsHTTP{Svc: &service.ProductService{Repo: r}},
		Orders:       &httpserver.OrdersHTTP{Svc: &service.OrderService{Repo: r}},
		Logs:         &httpserver.LogsHTTP{Svc: &service.LogService{Repo: r}},
		Auth:         &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: secret, AccessTTL: time.Hour}},
		JWTSecret:    secret,
		AuthRequired: true,
		Ready:        r.Ping,
	})

	srv := httptest.NewServer(e)
	t.Cleanup(func() {
		srv.Close()
		_ = pkgdb.Close(db)
	})
	return &API{URL: srv.URL, Repo: r, Secret: secret}
}
