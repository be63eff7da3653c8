package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"voyago/internal/config"
	"voyago/internal/middleware"
	"voyago/internal/repository"
	"voyago/internal/service"
)

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	authService *service.AuthService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, cfg *config.AppConfig) HandlerSet {
	accounts := repository.NewAccountRepository(db)
	limiter := service.NewLoginLimiter(cache, cfg.Security.LoginMaxAttempts, cfg.Security.LoginWindow)
	auth := service.NewAuthService(accounts, limiter, cfg, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		authService: auth,
	}
}

// NewHandlerSetWithStore wires the handlers against an arbitrary account
// store, without Postgres or redis. Used by tests and local dev mode.
func NewHandlerSetWithStore(log zerolog.Logger, accounts service.AccountStore, cfg *config.AppConfig) HandlerSet {
	auth := service.NewAuthService(accounts, nil, cfg, log)
	return HandlerSet{
		log:         log,
		cfg:         cfg,
		authService: auth,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/health", h.Health)

	auth := router.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)

	protected := router.Group("/auth")
	protected.Use(middleware.Auth(h.authService))
	protected.GET("/profile", h.Profile)
}
