package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/shop_admin/internal/hash"
	"github.com/Skotchmaster/shop_admin/internal/models"
	"github.com/Skotchmaster/shop_admin/internal/repo"
	"github.com/Skotchmaster/shop_admin/internal/transport"
	pkgdb "github.com/Skotchmaster/shop_admin/pkg/db"
	"github.com/Skotchmaster/shop_admin/pkg/tokens"
)

func init() {
	hash.Cost = bcrypt.MinCost
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func count(n int) *int { return &n }

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.(Event))
	return p.err
}

type fakeIndexer struct {
	indexed   map[uint]string
	deleted   []uint
	searchIDs []uint
	searchErr error
}

func (f *fakeIndexer) IndexProduct(_ context.Context, p *models.Product) error {
	if f.indexed == nil {
		f.indexed = map[uint]string{}
	}
	f.indexed[p.ID] = p.Name
	return nil
}

func (f *fakeIndexer) DeleteProduct(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndexer) SearchProducts(_ context.Context, _ string) ([]uint, error) {
	return f.searchIDs, f.searchErr
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	db, err := pkgdb.Open(context.Background(), "sqlite::memory:")
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	t.Cleanup(func() { _ = pkgdb.Close(db) })
	return repo.New(db)
}

func seedSeller(t *testing.T, r *repo.GormRepo) uint {
	t.Helper()
	u := &models.User{Name: "Seller", Email: "seller@example.com", PasswordHash: "x", Role: models.RoleSeller}
	require.NoError(t, r.CreateUser(context.Background(), u))
	return u.ID
}

func userReq(email string) transport.UserCreate {
	return transport.UserCreate{Name: "Ada", Email: email, Password: "Temp@1234", Role: models.RoleAdmin}
}

func TestUserService_CreateHashesAndAudits(t *testing.T) {
	r := newTestRepo(t)
	pub := &recordingPublisher{}
	svc := &UserService{Repo: r, Events: pub}
	ctx := context.Background()

	u, err := svc.Create(ctx, "root", userReq("ada@example.com"))
	require.NoError(t, err)
	require.NotZero(t, u.ID)
	assert.NotEqual(t, "Temp@1234", u.PasswordHash)
	assert.True(t, hash.CheckPassword(u.PasswordHash, "Temp@1234"))

	logs, err := r.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "root", logs[0].AdminName)
	assert.Equal(t, models.ActionAdd, logs[0].Action)
	assert.Equal(t, models.TableUsers, logs[0].TargetTable)
	assert.Equal(t, u.ID, logs[0].TargetID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, "users.add", pub.events[0].Type)
}

func TestUserService_DuplicateEmailConflicts(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}
	ctx := context.Background()

	_, err := svc.Create(ctx, "root", userReq("dup@example.com"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "root", userReq("dup@example.com"))
	require.ErrorIs(t, err, ErrConflict)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	logs, err := r.ListLogs(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestUserService_UpdateAndDeleteMissing(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}
	ctx := context.Background()

	_, err := svc.Update(ctx, "root", 42, transport.UserUpdate{Name: "X", Email: "x@example.com", Role: models.RoleCustomer})
	require.ErrorIs(t, err, ErrNotFound)

	found, err := svc.Delete(ctx, "root", 42)
	require.NoError(t, err)
	assert.False(t, found)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	logs, err := r.ListLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestUserService_UpdateKeepsPasswordWhenEmpty(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}
	ctx := context.Background()

	u, err := svc.Create(ctx, "", userReq("keep@example.com"))
	require.NoError(t, err)

	phone := "555-0100"
	upd, err := svc.Update(ctx, "", u.ID, transport.UserUpdate{Name: "Ada L", Email: "keep@example.com", PhoneNumber: &phone, Role: models.RoleSeller})
	require.NoError(t, err)
	assert.Equal(t, "Ada L", upd.Name)
	assert.Equal(t, models.RoleSeller, upd.Role)
	assert.True(t, hash.CheckPassword(upd.PasswordHash, "Temp@1234"))

	upd, err = svc.Update(ctx, "", u.ID, transport.UserUpdate{Name: "Ada L", Email: "keep@example.com", Password: "n3w", Role: models.RoleSeller})
	require.NoError(t, err)
	assert.True(t, hash.CheckPassword(upd.PasswordHash, "n3w"))

	logs, err := r.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, models.AnonymousActor, logs[0].AdminName)
	assert.Equal(t, models.ActionUpdate, logs[0].Action)
}

func TestUserService_RejectsUnknownRole(t *testing.T) {
	svc := &UserService{Repo: newTestRepo(t)}
	req := userReq("r@example.com")
	req.Role = "superuser"
	_, err := svc.Create(context.Background(), "root", req)
	require.ErrorIs(t, err, ErrValidation)
}

func TestProductService_LifecycleIndexesAndAudits(t *testing.T) {
	r := newTestRepo(t)
	idx := &fakeIndexer{}
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := &ProductService{Repo: r, Indexer: idx, Events: pub}
	ctx := context.Background()
	seller := seedSeller(t, r)

	p, err := svc.Create(ctx, "root", transport.ProductCreate{SellerID: seller, Name: "Lamp", Price: money("19.99"), Stock: count(5)})
	require.NoError(t, err, "a failing broker must not fail the request")
	assert.Equal(t, "Lamp", idx.indexed[p.ID])

	_, err = svc.Update(ctx, "root", p.ID, transport.ProductCreate{SellerID: seller, Name: "Desk Lamp", Price: money("21.50"), Stock: count(4)})
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", idx.indexed[p.ID])

	found, err := svc.Delete(ctx, "root", p.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []uint{p.ID}, idx.deleted)

	logs, err := r.ListLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, []string{models.ActionDelete, models.ActionUpdate, models.ActionAdd},
		[]string{logs[0].Action, logs[1].Action, logs[2].Action})
	for _, l := range logs {
		assert.Equal(t, models.TableProducts, l.TargetTable)
	}
	assert.Len(t, pub.events, 3)
}

func TestProductService_Validation(t *testing.T) {
	r := newTestRepo(t)
	svc := &ProductService{Repo: r}
	seller := seedSeller(t, r)
	_, err := svc.Create(context.Background(), "root", transport.ProductCreate{SellerID: seller, Name: "X", Price: money("-1"), Stock: count(1)})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(context.Background(), "root", 1, transport.ProductCreate{SellerID: seller, Name: "X", Price: money("1"), Stock: count(0)})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), "root", transport.ProductCreate{SellerID: seller, Name: "NoPrice", Stock: count(1)})
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(context.Background(), "root", transport.ProductCreate{SellerID: seller, Name: "NoStock", Price: money("1")})
	require.ErrorIs(t, err, ErrValidation)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductService_SearchFallsBackToStore(t *testing.T) {
	r := newTestRepo(t)
	idx := &fakeIndexer{searchErr: errors.New("es unavailable")}
	svc := &ProductService{Repo: r, Indexer: idx}
	ctx := context.Background()
	seller := seedSeller(t, r)

	lamp, err := svc.Create(ctx, "root", transport.ProductCreate{SellerID: seller, Name: "Lamp", Price: money("10"), Stock: count(1)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "root", transport.ProductCreate{SellerID: seller, Name: "Chair", Price: money("10"), Stock: count(1)})
	require.NoError(t, err)

	got, err := svc.Search(ctx, "lam")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, lamp.ID, got[0].ID)

	idx.searchErr = nil
	idx.searchIDs = []uint{lamp.ID}
	got, err = svc.Search(ctx, "anything")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Lamp", got[0].Name)
}

func TestOrderService_DefaultsAndListByUser(t *testing.T) {
	r := newTestRepo(t)
	svc := &OrderService{Repo: r}
	ctx := context.Background()

	o, err := svc.Create(ctx, "root", transport.OrderCreate{UserID: 7, TotalAmount: money("12.50")})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, o.Status)
	_, err = svc.Create(ctx, "root", transport.OrderCreate{UserID: 8, TotalAmount: money("3"), Status: models.OrderStatusShipped})
	require.NoError(t, err)

	mine, err := svc.ListByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, o.ID, mine[0].ID)

	upd, err := svc.Update(ctx, "root", o.ID, transport.OrderCreate{UserID: 7, TotalAmount: money("20"), Status: models.OrderStatusDelivered})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, upd.Status)
	assert.Equal(t, o.CreatedAt.Unix(), upd.CreatedAt.Unix())

	_, err = svc.Create(ctx, "root", transport.OrderCreate{UserID: 7, TotalAmount: money("-5")})
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(ctx, "root", transport.OrderCreate{UserID: 7})
	require.ErrorIs(t, err, ErrValidation)

	logs, err := (&LogService{Repo: r}).List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	for _, l := range logs {
		assert.Equal(t, models.TableOrders, l.TargetTable)
	}
}

func TestAuthService_Login(t *testing.T) {
	r := newTestRepo(t)
	users := &UserService{Repo: r}
	ctx := context.Background()
	secret := []byte("test-secret")

	_, err := users.Create(ctx, "", userReq("admin@example.com"))
	require.NoError(t, err)
	cust := userReq("cust@example.com")
	cust.Role = models.RoleCustomer
	_, err = users.Create(ctx, "", cust)
	require.NoError(t, err)

	svc := &AuthService{Repo: r, JWTSecret: secret, AccessTTL: time.Hour}

	res, err := svc.Login(ctx, "admin@example.com", "Temp@1234")
	require.NoError(t, err)
	assert.Equal(t, "Ada", res.Name)
	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, secret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "Ada", claims.Name)

	_, err = svc.Login(ctx, "admin@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "Temp@1234")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "cust@example.com", "Temp@1234")
	require.ErrorIs(t, err, ErrForbidden)
}
