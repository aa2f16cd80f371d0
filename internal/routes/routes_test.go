package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/store-rating/internal/audit"
	"github.com/BruksfildServices01/store-rating/internal/auth"
	"github.com/BruksfildServices01/store-rating/internal/config"
	infraRepo "github.com/BruksfildServices01/store-rating/internal/infra/repository"
	"github.com/BruksfildServices01/store-rating/internal/metrics"
	"github.com/BruksfildServices01/store-rating/internal/models"
	"github.com/BruksfildServices01/store-rating/internal/ratelimit"
	"github.com/BruksfildServices01/store-rating/internal/testutil"
)

const testSecret = "routes-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type apiResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Token     string          `json:"token"`
	User      json.RawMessage `json:"user"`
	Data      json.RawMessage `json:"data"`
	Total     int             `json:"total"`
}

type server struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
	tokens *auth.TokenIssuer
}

func newServer(t *testing.T, opts ...func(*Deps)) *server {
	t.Helper()

	db := testutil.NewDB(t)
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		JWTSecret:  testSecret,
		JWTTTL:     time.Hour,
		BcryptCost: bcrypt.MinCost,
	}

	deps := Deps{
		DB:      db,
		Config:  cfg,
		Logger:  zap.NewNop(),
		Metrics: metrics.New(),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	engine := NewEngine(deps)

	return &server{
		t:      t,
		db:     db,
		engine: engine,
		tokens: auth.NewTokenIssuer(testSecret, time.Hour),
	}
}

func (s *server) do(method, path, token string, body any) (int, apiResponse) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var resp apiResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec.Code, resp
}

func (s *server) tokenFor(u *models.User) string {
	s.t.Helper()
	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	require.NoError(s.t, err)
	return token
}

// --------------------------------------------------
// Scenarios
// --------------------------------------------------

func TestRegisterReturnsUserRole(t *testing.T) {
	s := newServer(t)

	status, resp := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Twenty Five Character Nme",
		"email":    "scenario1@example.com",
		"password": "Secret@1",
		"address":  "12 Main Street",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, resp.Success)
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.NotEmpty(t, resp.Token)

	var user struct {
		ID   uint   `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(resp.User, &user))
	assert.Equal(t, "user", user.Role)

	claims, err := s.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.ID)
}

func TestLoginWrongPasswordIssuesNoToken(t *testing.T) {
	s := newServer(t)
	testutil.CreateUser(t, s.db, "login@example.com", models.RoleUser)

	status, resp := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "Wrong@123",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Token)
	assert.Equal(t, "Invalid email or password", resp.Message)

	status, resp = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": testutil.DefaultPassword,
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, resp.Token)
}

func TestCreateStoreForOwnerWithStoreConflicts(t *testing.T) {
	s := newServer(t)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", models.RoleAdmin)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", models.RoleStoreOwner)
	testutil.CreateStore(t, s.db, "Existing Owner Store Name", owner)

	status, resp := s.do(http.MethodPost, "/api/stores/create", s.tokenFor(admin), map[string]string{
		"name":        "Another Store For The Owner",
		"email":       "another@example.com",
		"address":     "1 Second Street",
		"owner_email": "owner@example.com",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "This owner already has a store", resp.Message)

	var n int64
	require.NoError(t, s.db.Model(&models.Store{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	var reloaded models.User
	require.NoError(t, s.db.First(&reloaded, owner.ID).Error)
	assert.Equal(t, models.RoleStoreOwner, reloaded.Role)
}

func TestSubmitOutOfRangeRating(t *testing.T) {
	s := newServer(t)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", models.RoleStoreOwner)
	store := testutil.CreateStore(t, s.db, "Out Of Range Rating Store", owner)
	user := testutil.CreateUser(t, s.db, "user@example.com", models.RoleUser)

	status, resp := s.do(http.MethodPost, "/api/ratings/submit", s.tokenFor(user), map[string]any{
		"storeId": store.ID,
		"rating":  6,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Rating must be an integer between 1 and 5", resp.Message)

	status, _ = s.do(http.MethodPost, "/api/ratings/submit", s.tokenFor(user), map[string]any{
		"storeId": store.ID,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = s.do(http.MethodPost, "/api/ratings/submit", s.tokenFor(user), map[string]any{
		"storeId": 999,
		"rating":  3,
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Store not found", resp.Message)
}

// --------------------------------------------------
// Rating flow and aggregates
// --------------------------------------------------

func TestRatingFlowAndAggregates(t *testing.T) {
	s := newServer(t)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", models.RoleAdmin)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", models.RoleStoreOwner)
	store := testutil.CreateStore(t, s.db, "Aggregate Flow Test Store", owner)

	for i, v := range []int{5, 3, 4} {
		u := testutil.CreateUser(t, s.db, fmt.Sprintf("rater%d@example.com", i), models.RoleUser)
		status, resp := s.do(http.MethodPost, "/api/ratings/submit", s.tokenFor(u), map[string]any{
			"storeId": store.ID,
			"rating":  v,
		})
		require.Equal(t, http.StatusOK, status, resp.Message)
	}

	status, resp := s.do(http.MethodGet, fmt.Sprintf("/api/stores/%d", store.ID), "", nil)
	require.Equal(t, http.StatusOK, status)
	var got struct {
		AverageRating float64 `json:"average_rating"`
		TotalRatings  int64   `json:"total_ratings"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.InDelta(t, 4.0, got.AverageRating, 1e-9)
	assert.EqualValues(t, 3, got.TotalRatings)

	// an admin may rate too, and resubmitting overwrites
	for _, v := range []int{1, 5} {
		status, _ = s.do(http.MethodPost, "/api/ratings/submit", s.tokenFor(admin), map[string]any{
			"storeId": store.ID,
			"rating":  v,
		})
		require.Equal(t, http.StatusOK, status)
	}

	status, resp = s.do(http.MethodGet, "/api/ratings/count", s.tokenFor(admin), nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"count":4}`, string(resp.Data))

	status, resp = s.do(http.MethodGet, fmt.Sprintf("/api/ratings/user/%d", store.ID), s.tokenFor(admin), nil)
	require.Equal(t, http.StatusOK, status)
	var mine struct {
		Rating int `json:"rating"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &mine))
	assert.Equal(t, 5, mine.Rating)

	status, resp = s.do(http.MethodGet, "/api/dashboard/store-owner", s.tokenFor(owner), nil)
	require.Equal(t, http.StatusOK, status)
	var dash struct {
		Store struct {
			AverageRating float64 `json:"averageRating"`
			TotalRatings  int64   `json:"totalRatings"`
		} `json:"store"`
		Ratings []json.RawMessage `json:"ratings"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &dash))
	assert.InDelta(t, 4.25, dash.Store.AverageRating, 1e-9)
	assert.EqualValues(t, 4, dash.Store.TotalRatings)
	assert.Len(t, dash.Ratings, 4)

	status, resp = s.do(http.MethodGet, fmt.Sprintf("/api/ratings/store/%d", store.ID), s.tokenFor(owner), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 4, resp.Total)
}

func TestStoreWithoutRatingsHasZeroAggregates(t *testing.T) {
	s := newServer(t)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", models.RoleStoreOwner)
	testutil.CreateStore(t, s.db, "Never Rated Store Name", owner)

	status, resp := s.do(http.MethodGet, "/api/stores", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `0`, string(mustField(t, resp.Data, 0, "average_rating")))
	assert.JSONEq(t, `0`, string(mustField(t, resp.Data, 0, "total_ratings")))
}

func mustField(t *testing.T, data json.RawMessage, index int, field string) json.RawMessage {
	t.Helper()
	var rows []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Greater(t, len(rows), index)
	return rows[index][field]
}

func TestUserDashboardShowsOwnRating(t *testing.T) {
	s := newServer(t)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", models.RoleStoreOwner)
	store := testutil.CreateStore(t, s.db, "User Dashboard Route Store", owner)
	user := testutil.CreateUser(t, s.db, "user@example.com", models.RoleUser)

	status, resp := s.do(http.MethodGet, "/api/dashboard/user", s.tokenFor(user), nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `null`, string(mustField(t, resp.Data, 0, "user_rating")))

	testutil.CreateRating(t, s.db, user, store, 2)

	_, resp = s.do(http.MethodGet, "/api/dashboard/user", s.tokenFor(user), nil)
	assert.JSONEq(t, `2`, string(mustField(t, resp.Data, 0, "user_rating")))
}

func TestUserRatingIsNullWhenMissing(t *testing.T) {
	s := newServer(t)
	user := testutil.CreateUser(t, s.db, "user@example.com", models.RoleUser)

	status, resp := s.do(http.MethodGet, "/api/ratings/user/1", s.tokenFor(user), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(resp.Data))
}

// --------------------------------------------------
// Gating
// --------------------------------------------------

func TestAuthenticationAndRoleGating(t *testing.T) {
	s := newServer(t)
	user := testutil.CreateUser(t, s.db, "user@example.com", models.RoleUser)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", models.RoleStoreOwner)

	expired, err := s.tokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Issue(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	status, resp := s.do(http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "missing_token", resp.ErrorCode)

	status, resp = s.do(http.MethodGet, "/api/users/profile", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "token_expired", resp.ErrorCode)

	status, resp = s.do(http.MethodGet, "/api/users/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid_token", resp.ErrorCode)

	status, _ = s.do(http.MethodGet, "/api/users/profile", s.tokenFor(user), nil)
	assert.Equal(t, http.StatusOK, status)

	status, resp = s.do(http.MethodGet, "/api/users", s.tokenFor(user), nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Access denied. Admin privileges required.", resp.Message)

	status, _ = s.do(http.MethodGet, "/api/dashboard/store-owner", s.tokenFor(user), nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, resp = s.do(http.MethodPost, "/api/ratings/submit", s.tokenFor(owner), map[string]any{"storeId": 1, "rating": 3})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Access denied.", resp.Message)

	status, _ = s.do(http.MethodGet, "/api/stores", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

// --------------------------------------------------
// Admin flows
// --------------------------------------------------

func TestAdminCreatesUserAndStore(t *testing.T) {
	s := newServer(t)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", models.RoleAdmin)
	token := s.tokenFor(admin)

	status, resp := s.do(http.MethodPost, "/api/users/create", token, map[string]string{
		"name":     "Future Store Owner Person",
		"email":    "future@example.com",
		"password": "Owner@123",
		"address":  "5 Market Road",
		"role":     "user",
	})
	require.Equal(t, http.StatusCreated, status, resp.Message)
	assert.NotContains(t, string(resp.Data), "password")

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))

	status, resp = s.do(http.MethodPost, "/api/stores/create", token, map[string]string{
		"name":        "Future Owner Grocery Store",
		"email":       "grocery@example.com",
		"address":     "5 Market Road",
		"owner_email": "future@example.com",
	})
	require.Equal(t, http.StatusCreated, status, resp.Message)

	status, resp = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	var detail struct {
		Role  string `json:"role"`
		Store *struct {
			Name string `json:"name"`
		} `json:"store"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &detail))
	assert.Equal(t, "store_owner", detail.Role)
	require.NotNil(t, detail.Store)
	assert.Equal(t, "Future Owner Grocery Store", detail.Store.Name)

	status, resp = s.do(http.MethodGet, "/api/users?role=store_owner", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, resp.Total)

	status, resp = s.do(http.MethodGet, "/api/dashboard/admin", token, nil)
	require.Equal(t, http.StatusOK, status)
	var dash struct {
		TotalUsers  int64 `json:"totalUsers"`
		TotalStores int64 `json:"totalStores"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &dash))
	assert.EqualValues(t, 2, dash.TotalUsers)
	assert.EqualValues(t, 1, dash.TotalStores)

	status, resp = s.do(http.MethodGet, "/api/users/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_id", resp.ErrorCode)
}

func TestChangePasswordRoute(t *testing.T) {
	s := newServer(t)
	user := testutil.CreateUser(t, s.db, "user@example.com", models.RoleUser)

	status, resp := s.do(http.MethodPost, "/api/auth/change-password", s.tokenFor(user), map[string]string{
		"currentPassword": "Wrong@123",
		"newPassword":     "Better@22",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Current password is incorrect", resp.Message)

	status, resp = s.do(http.MethodPost, "/api/auth/change-password", s.tokenFor(user), map[string]string{
		"currentPassword": testutil.DefaultPassword,
		"newPassword":     "Better@22",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Password changed successfully", resp.Message)
}

// --------------------------------------------------
// Ops
// --------------------------------------------------

func TestOpsRoutesAndFallbacks(t *testing.T) {
	s := newServer(t)

	status, resp := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Store Rating API is running!", resp.Message)

	status, _ = s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, resp = s.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, resp.Success)
	assert.Equal(t, "Route not found", resp.Message)

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "store_rating_http_requests_total")
}

func TestPanicBecomesEnvelope(t *testing.T) {
	s := newServer(t)
	s.engine.GET("/boom", func(*gin.Context) { panic("boom") })

	status, resp := s.do(http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.False(t, resp.Success)
	assert.Equal(t, "Something went wrong!", resp.Message)
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newServer(t, func(d *Deps) {
		d.Limiter = ratelimit.NewMemory(0.001, 2)
	})
	body := map[string]string{"email": "nobody@example.com", "password": "Wrong@123"}

	for i := 0; i < 2; i++ {
		status, _ := s.do(http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, status)
	}

	status, resp := s.do(http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "rate_limited", resp.ErrorCode)
}

func TestAuditTrailIsListedForAdmins(t *testing.T) {
	var dispatcher *audit.Dispatcher
	s := newServer(t, func(d *Deps) {
		dispatcher = audit.NewDispatcher(audit.New(infraRepo.NewAuditGormRepository(d.DB)), zap.NewNop())
		d.Audit = dispatcher
	})
	admin := testutil.CreateUser(t, s.db, "admin@example.com", models.RoleAdmin)

	status, _ := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Audited Registration User",
		"email":    "audited@example.com",
		"password": "Secret@1",
		"address":  "7 Audit Lane",
	})
	require.Equal(t, http.StatusCreated, status)

	// drain the queue so the row is written
	require.NoError(t, dispatcher.Close(context.Background()))

	status, resp := s.do(http.MethodGet, "/api/audit-logs?action=user_registered", s.tokenFor(admin), nil)
	require.Equal(t, http.StatusOK, status)

	var page struct {
		Total int64 `json:"total"`
		Logs  []struct {
			Action string `json:"action"`
			Entity string `json:"entity"`
		} `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Logs, 1)
	assert.Equal(t, "user", page.Logs[0].Entity)

	status, resp = s.do(http.MethodGet, "/api/audit-logs?from=yesterday", s.tokenFor(admin), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_date", resp.ErrorCode)
}
