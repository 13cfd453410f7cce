package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kusina/canteen-api/internal/api/handler"
	"github.com/kusina/canteen-api/internal/api/middleware"
	"github.com/kusina/canteen-api/internal/core/domain"
	"github.com/kusina/canteen-api/internal/core/ports"
	"github.com/kusina/canteen-api/internal/core/service"
	"github.com/kusina/canteen-api/internal/infrastructure/config"
	mongodb "github.com/kusina/canteen-api/internal/infrastructure/db/mongo"
	redisdb "github.com/kusina/canteen-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, store ports.ObjectStorage, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("canteen"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	menuRepo := mongodb.NewMenuRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	denylist := redisdb.NewDenylist(rdb)

	authService := service.NewAuthService(userRepo, denylist, cfg.JWTSecret, cfg.AdminEmail, cfg.TokenTTL)
	menuService := service.NewMenuService(menuRepo, store, log)
	orderService := service.NewOrderService(orderRepo, menuRepo, userRepo, log)
	checkoutService := service.NewCheckoutService(orderRepo, menuRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	menuHandler := handler.NewMenuHandler(menuService)
	orderHandler := handler.NewOrderHandler(orderService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)

	authRequired := middleware.Auth(cfg.JWTSecret, denylist)
	anyRole := middleware.RBAC(cfg.AdminEmail, domain.RoleAdmin, domain.RoleCustomer)
	adminOnly := middleware.RBAC(cfg.AdminEmail, domain.RoleAdmin)

	// --- Auth routes ---
	v1 := e.Group("/v1")
	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/logout", authHandler.Logout, authRequired)
	v1.GET("/auth/me", authHandler.Me, authRequired)

	// --- Menu routes (reads for everyone signed in, writes admin only) ---
	menu := v1.Group("/menu", authRequired)
	menu.GET("", menuHandler.List, anyRole)
	menu.GET("/:id", menuHandler.Get, anyRole)
	menu.POST("", menuHandler.Create, adminOnly)
	menu.PATCH("/:id", menuHandler.Update, adminOnly)
	menu.DELETE("/:id", menuHandler.Delete, adminOnly)

	// --- Order routes (owner scoped) ---
	orders := v1.Group("/orders", authRequired, anyRole)
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.PATCH("/:id", orderHandler.EditQuantity)
	orders.DELETE("/:id", orderHandler.Delete)

	// --- Checkout routes ---
	checkout := v1.Group("/checkout", authRequired, anyRole)
	checkout.GET("/preview", checkoutHandler.Preview)
	checkout.POST("/confirm", checkoutHandler.Confirm)

	// --- Admin routes ---
	admin := v1.Group("/admin", authRequired, adminOnly)
	admin.GET("/orders", orderHandler.ListAll)
	admin.POST("/orders/:id/done", orderHandler.MarkDone)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
