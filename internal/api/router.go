package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/joshbarros/auth-gateway/internal/api/handler"
	"github.com/joshbarros/auth-gateway/internal/api/middleware"
	"github.com/joshbarros/auth-gateway/internal/core/domain"
	"github.com/joshbarros/auth-gateway/internal/core/service"
	"github.com/joshbarros/auth-gateway/internal/core/token"
	"github.com/joshbarros/auth-gateway/internal/infrastructure/config"
	mongodb "github.com/joshbarros/auth-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/joshbarros/auth-gateway/internal/infrastructure/db/redis"
	"github.com/joshbarros/auth-gateway/internal/infrastructure/upstream"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Every dependency is passed in explicitly; nothing is resolved from
// request-scoped state.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("authgw"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	upstreamClient := upstream.NewClient(upstream.Config{
		BaseURL: cfg.UpstreamBaseURL,
		Timeout: cfg.UpstreamTimeout,
	})
	codec := token.NewCodec(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, upstreamClient, codec, cfg.TokenTTL())
	limiter := redisdb.NewLoginLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)

	authHandler := handler.NewAuthHandler(authService, limiter, log)
	proxyHandler := handler.NewProxyHandler(upstreamClient)
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	authMiddleware := middleware.Auth(authService)

	// --- Token issuance ---
	e.POST("/token", authHandler.Token)

	// --- Protected proxy routes ---
	e.GET("/user", proxyHandler.User, authMiddleware, middleware.RequireRoles(domain.RoleUser, domain.RoleAdmin))
	e.GET("/admin", proxyHandler.Admin, authMiddleware, middleware.RequireRoles(domain.RoleAdmin))

	// --- Health & observability (no auth required) ---
	e.GET("/health", proxyHandler.Health)          // upstream health, proxied
	e.GET("/health/ready", readinessHandler.Readiness) // own dependencies
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
