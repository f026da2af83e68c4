package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"voidwebsite/internal/database"
	"voidwebsite/internal/models"
	"voidwebsite/internal/orderstate"
	"voidwebsite/internal/payment"
	"voidwebsite/internal/redis"
	"voidwebsite/internal/repository"
	"voidwebsite/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminEmail    = "admin@voidesports.gg"
	testAdminPassword = "correct-horse"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGateway struct {
	created  []payment.IntentRequest
	status   payment.IntentStatus
	metadata map[string]string
}

func (g *fakeGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	g.created = append(g.created, req)
	g.metadata = req.Metadata
	return &payment.Intent{
		ID:           "pi_test_1",
		ClientSecret: "pi_test_1_secret",
		Status:       payment.StatusRequiresPaymentMethod,
		AmountCents:  payment.ToCents(req.Amount),
		Currency:     req.Currency,
		Metadata:     req.Metadata,
	}, nil
}

func (g *fakeGateway) GetIntent(ctx context.Context, id string) (*payment.Intent, error) {
	return &payment.Intent{ID: id, Status: g.status, Metadata: g.metadata}, nil
}

type testServer struct {
	router  *gin.Engine
	store   *orderstate.Store
	gateway *fakeGateway
	teams   services.TeamService
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	redisClient := redis.NewClient(rdb)
	carts := redis.NewCartStore(redisClient, 0)

	store := orderstate.NewStore(
		repository.NewOrderRepository(db),
		repository.NewOrderSetRepository(db),
		redis.NewMirror(redisClient),
		orderstate.Options{Logger: quiet},
	)
	require.NoError(t, store.Load(ctx))

	pricing := services.NewPricingService(repository.NewSettingsRepository(db), services.Pricing{
		TaxRate:      decimal.RequireFromString("0.08"),
		ShippingFlat: decimal.Zero,
	}, quiet)
	gateway := &fakeGateway{}
	users := services.NewUserService(repository.NewUserRepository(db))
	_, _, err = users.EnsureAdmin(ctx, testAdminEmail, "Admin", testAdminPassword)
	require.NoError(t, err)
	auth := services.NewAuthService(users, "test-secret")
	teams := services.NewTeamService(repository.NewTeamRepository(db))

	router := NewRouter(Dependencies{
		Products:    services.NewResourceService[models.Product](repository.NewCRUDRepository[models.Product](db, "name asc"), services.ValidateProduct),
		Reviews:     services.NewReviewService(repository.NewReviewRepository(db)),
		Teams:       teams,
		Matches:     services.NewResourceService[models.ScheduleMatch](repository.NewCRUDRepository[models.ScheduleMatch](db, "date asc"), services.ValidateMatch),
		Events:      services.NewResourceService[models.ScheduleEvent](repository.NewCRUDRepository[models.ScheduleEvent](db, "date asc"), services.ValidateEvent),
		Ambassadors: services.NewResourceService[models.Ambassador](repository.NewCRUDRepository[models.Ambassador](db, "name asc"), services.ValidateAmbassador),
		Dashboard:   services.NewResourceService[models.DashboardItem](repository.NewCRUDRepository[models.DashboardItem](db, "title asc"), services.ValidateDashboardItem),
		Orders:      services.NewOrderService(store),
		Sets:        store,
		Reconciler:  orderstate.NewReconciler(store, 0, quiet),
		Checkout: services.NewCheckoutService(store, carts, redisClient, gateway, pricing, services.CheckoutOptions{
			Logger: quiet,
		}),
		Pricing:        pricing,
		Carts:          carts,
		Auth:           auth,
		Users:          users,
		Storefront:     StorefrontConfig{StripePublishableKey: "pk_test", Currency: "usd"},
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	srv := &testServer{router: router, store: store, gateway: gateway, teams: teams}
	var login loginResponse
	srv.decode(t, srv.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": testAdminEmail, "password": testAdminPassword}, false), http.StatusOK, &login)
	srv.token = login.Token
	return srv
}

// loginResponse is the part of the login payload the tests read.
type loginResponse struct {
	Token string `json:"token"`
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) decode(t *testing.T, w *httptest.ResponseRecorder, status int, dest interface{}) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	if dest != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
	}
}

func testCustomer() models.CustomerInfo {
	return models.CustomerInfo{
		Name:    "Alice Smith",
		Email:   "alice@example.com",
		Address: "1 Main St",
		ZipCode: "10001",
		Phone:   "555-0100",
		Country: "US",
	}
}
