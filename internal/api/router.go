package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/featherback/featherback-api/internal/api/handler"
	"github.com/featherback/featherback-api/internal/api/middleware"
	"github.com/featherback/featherback-api/internal/core/password"
	"github.com/featherback/featherback-api/internal/core/service"
	"github.com/featherback/featherback-api/internal/core/token"
	"github.com/featherback/featherback-api/internal/infrastructure/config"
	mongodb "github.com/featherback/featherback-api/internal/infrastructure/db/mongo"
	"github.com/featherback/featherback-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, fanout service.Fanout, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("featherback"))

	// --- Dependencies ---
	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	hasher := password.New(cfg.BcryptCost)

	userRepo := mongodb.NewUserRepository(db)
	customerRepo := mongodb.NewCustomerRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	authService := service.NewAuthService(userRepo, customerRepo, tokens, hasher, log)
	userService := service.NewUserService(userRepo, hasher, log)
	customerService := service.NewCustomerService(customerRepo, userRepo, log)
	notificationService := service.NewNotificationService(notificationRepo, fanout, log)
	settingsService := service.NewSettingsService(userRepo, customerRepo, hasher, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)
	customerHandler := handler.NewCustomerHandler(customerService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	requireJWT := middleware.RequireJWT(tokens)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login, middleware.ParseBasicAuth())
	e.GET("/whoami", authHandler.WhoAmI, requireJWT)
	e.POST("/signup", authHandler.Signup)

	// --- Customers: root only ---
	customers := e.Group("/customers", requireJWT, middleware.RequireRoot())
	customers.GET("", customerHandler.List)
	customers.POST("", customerHandler.Create)
	customers.GET("/:id", customerHandler.Get)
	customers.PATCH("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)
	customers.GET("/:id/users", customerHandler.ListUsers)

	// --- Users: admin only, impersonation additionally root only ---
	users := e.Group("/users", requireJWT, middleware.RequireAdmin())
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.GET("/:id/impersonate", userHandler.Impersonate, middleware.RequireRoot())

	// --- Notifications: any authenticated user ---
	notifications := e.Group("/notifications", requireJWT)
	notifications.GET("", notificationHandler.List)
	notifications.POST("", notificationHandler.Create)
	notifications.DELETE("/:id", notificationHandler.Delete)

	// --- Settings: any authenticated user; account routes admin only ---
	settings := e.Group("/settings", requireJWT)
	settings.PATCH("/password", settingsHandler.ChangePassword)
	settings.GET("/profile", settingsHandler.GetProfile)
	settings.PATCH("/profile", settingsHandler.UpdateProfile)
	settings.GET("/account", settingsHandler.GetAccount, middleware.RequireAdmin())
	settings.PATCH("/account", settingsHandler.UpdateAccount, middleware.RequireAdmin())

	// --- Ops endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
