package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/store-rating/internal/audit"
	"github.com/BruksfildServices01/store-rating/internal/auth"
	"github.com/BruksfildServices01/store-rating/internal/config"
	"github.com/BruksfildServices01/store-rating/internal/handlers"
	"github.com/BruksfildServices01/store-rating/internal/httperr"
	infraRepo "github.com/BruksfildServices01/store-rating/internal/infra/repository"
	"github.com/BruksfildServices01/store-rating/internal/metrics"
	"github.com/BruksfildServices01/store-rating/internal/middleware"
	"github.com/BruksfildServices01/store-rating/internal/models"
	"github.com/BruksfildServices01/store-rating/internal/ratelimit"
	ucAuth "github.com/BruksfildServices01/store-rating/internal/usecase/auth"
	ucDashboard "github.com/BruksfildServices01/store-rating/internal/usecase/dashboard"
	ucRating "github.com/BruksfildServices01/store-rating/internal/usecase/rating"
	ucStore "github.com/BruksfildServices01/store-rating/internal/usecase/store"
	ucUser "github.com/BruksfildServices01/store-rating/internal/usecase/user"
	"github.com/BruksfildServices01/store-rating/internal/validators"
)

// Deps are the process-wide singletons the routes are built from. Metrics,
// Limiter, Audit and Resolver are optional.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Limiter ratelimit.Limiter
	Audit   *audit.Dispatcher

	// Resolver enables the email domain check on registration.
	Resolver validators.Resolver
}

// NewEngine returns a gin engine with the global middleware, the envelope
// for unknown routes and panics, and every route registered.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Logger, d.Metrics),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			d.Logger.Error("panic recovered",
				zap.Any("panic", recovered),
				zap.String("path", c.Request.URL.Path),
			)
			httperr.Internal(c, "internal_error", "Something went wrong!")
		}),
		middleware.CORSMiddleware(),
	)

	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, "route_not_found", "Route not found")
	})

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	storeRepo := infraRepo.NewStoreGormRepository(d.DB)
	ratingRepo := infraRepo.NewRatingGormRepository(d.DB)
	dashboardRepo := infraRepo.NewDashboardGormRepository(d.DB)
	auditRepo := infraRepo.NewAuditGormRepository(d.DB)

	hasher := auth.NewPasswordHasher(d.Config.BcryptCost)
	tokens := auth.NewTokenIssuer(d.Config.JWTSecret, d.Config.JWTTTL)

	// ======================================================
	// USE CASES
	// ======================================================
	registerUC := ucAuth.NewRegister(userRepo, hasher, tokens, d.Audit, d.Resolver)
	loginUC := ucAuth.NewLogin(userRepo, hasher, tokens)
	changePasswordUC := ucAuth.NewChangePassword(userRepo, hasher, d.Audit)

	listUsersUC := ucUser.NewList(userRepo)
	getUserUC := ucUser.NewGet(userRepo, storeRepo)
	createUserUC := ucUser.NewCreate(userRepo, hasher, d.Audit)
	profileUC := ucUser.NewProfile(userRepo)

	listStoresUC := ucStore.NewList(storeRepo)
	getStoreUC := ucStore.NewGet(storeRepo)
	createStoreUC := ucStore.NewCreate(storeRepo, d.Audit)
	myStoreUC := ucStore.NewMine(storeRepo)

	submitRatingUC := ucRating.NewSubmit(ratingRepo, storeRepo, d.Audit)
	userRatingUC := ucRating.NewForUser(ratingRepo)
	storeRatingsUC := ucRating.NewForStore(ratingRepo)
	countRatingsUC := ucRating.NewCount(ratingRepo)

	adminDashboardUC := ucDashboard.NewAdmin(userRepo, storeRepo, ratingRepo)
	ownerDashboardUC := ucDashboard.NewStoreOwner(storeRepo, ratingRepo)
	userDashboardUC := ucDashboard.NewUser(dashboardRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB, d.Logger)
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, changePasswordUC, d.Logger)
	userHandler := handlers.NewUserHandler(listUsersUC, getUserUC, createUserUC, profileUC, d.Logger)
	storeHandler := handlers.NewStoreHandler(listStoresUC, getStoreUC, createStoreUC, myStoreUC, d.Logger)
	ratingHandler := handlers.NewRatingHandler(submitRatingUC, userRatingUC, storeRatingsUC, countRatingsUC, d.Metrics, d.Logger)
	dashboardHandler := handlers.NewDashboardHandler(adminDashboardUC, ownerDashboardUC, userDashboardUC, d.Logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditRepo, d.Logger)

	authenticated := middleware.AuthMiddleware(tokens, d.Logger, d.Metrics)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	ownerOnly := middleware.RequireRole(models.RoleStoreOwner)
	raters := middleware.RequireRole(models.RoleUser, models.RoleAdmin)

	limited := func(c *gin.Context) { c.Next() }
	if d.Limiter != nil {
		limited = middleware.RateLimit(d.Limiter, d.Logger, d.Metrics)
	}

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/register", limited, authHandler.Register)
			authAPI.POST("/login", limited, authHandler.Login)
			authAPI.POST("/change-password", authenticated, authHandler.ChangePassword)
		}

		// ------------------------------
		// USERS
		// ------------------------------
		users := api.Group("/users", authenticated)
		{
			users.GET("/profile", userHandler.Profile)
			users.GET("", adminOnly, userHandler.List)
			users.POST("/create", adminOnly, userHandler.Create)
			users.GET("/:id", adminOnly, userHandler.Get)
		}

		// ------------------------------
		// STORES
		// ------------------------------
		stores := api.Group("/stores")
		{
			stores.GET("", storeHandler.List)
			stores.GET("/:id", storeHandler.Get)
			stores.POST("/create", authenticated, adminOnly, storeHandler.Create)
			stores.GET("/my/store", authenticated, ownerOnly, storeHandler.Mine)
		}

		// ------------------------------
		// RATINGS
		// ------------------------------
		ratings := api.Group("/ratings", authenticated)
		{
			ratings.POST("/submit", raters, ratingHandler.Submit)
			ratings.GET("/user/:storeId", raters, ratingHandler.ForUser)
			ratings.GET("/store/:storeId", ratingHandler.ForStore)
			ratings.GET("/count", adminOnly, ratingHandler.Count)
		}

		// ------------------------------
		// DASHBOARDS
		// ------------------------------
		dashboard := api.Group("/dashboard", authenticated)
		{
			dashboard.GET("/admin", adminOnly, dashboardHandler.Admin)
			dashboard.GET("/store-owner", ownerOnly, dashboardHandler.StoreOwner)
			dashboard.GET("/user", raters, dashboardHandler.User)
		}

		api.GET("/audit-logs", authenticated, adminOnly, auditLogsHandler.List)
	}
}
