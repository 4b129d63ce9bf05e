package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"glamify/internal/cache"
	"glamify/internal/cart"
	"glamify/internal/config"
	"glamify/internal/database"
	"glamify/internal/middleware"
	"glamify/internal/repository"
	"glamify/internal/service"
	"glamify/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service) (*Server, error) {
	redisClient := connectRedis(cfg.Redis, logger)

	router, err := newRouter(cfg, logger, db, redisClient)
	if err != nil {
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, err
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server, nil
}

func newRouter(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) (chi.Router, error) {
	router := chi.NewRouter()

	for _, mw := range middleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.ErrorHandlingMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins, !cfg.IsProduction()))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health()
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		middleware.RespondWithJSON(w, status, health)
	})

	// Initialize repositories
	sqlDB := db.DB()
	userRepo := repository.NewUserRepository(sqlDB)
	productRepo := repository.NewProductRepository(sqlDB)
	categoryRepo := repository.NewCategoryRepository(sqlDB)
	orderRepo := repository.NewOrderRepository(sqlDB)

	// The catalog cache and cart storage follow Redis availability
	var (
		catalogCache  service.CatalogCache
		cartPersister cart.Persister
	)
	if redisClient != nil {
		catalogCache = cache.NewCatalogCache(redisClient, cfg.Catalog.CacheTTL())
		cartPersister = cart.NewRedisPersister(redisClient, cfg.Cart.TTL())
	} else {
		filePersister, err := cart.NewFilePersister(cfg.Cart.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare cart storage: %w", err)
		}
		cartPersister = filePersister
		logger.Warn("Redis unavailable, using file cart storage and uncached catalog",
			zap.String("cart_dir", cfg.Cart.Dir),
		)
	}

	// Initialize services
	tokens := service.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := service.NewAuthService(userRepo, tokens, logger)
	productService := service.NewProductService(productRepo, categoryRepo, catalogCache, logger)
	statsService := service.NewStatsService(productRepo, orderRepo, userRepo, logger)
	contactService := service.NewContactService(logger)

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, transport.CookieSettings{
		Name:   cfg.JWT.CookieName,
		Secure: cfg.IsProduction(),
	}, logger)
	productHandler := transport.NewProductHandler(productService, logger)
	statsHandler := transport.NewStatsHandler(statsService)
	contactHandler := transport.NewContactHandler(contactService, logger)
	cartHandler := transport.NewCartHandler(cart.NewStore(cartPersister), productService, cfg.IsProduction(), logger)

	// Create auth and rate limit middleware
	authMiddleware := middleware.AuthMiddleware(tokens, cfg.JWT.CookieName, logger)
	loginLimiter := middleware.RateLimit(redisClient, middleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.Requests,
		Window:            cfg.RateLimit.Window(),
		KeyPrefix:         "ratelimit:login",
	}, logger)
	contactLimiter := middleware.RateLimit(redisClient, middleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.Requests,
		Window:            cfg.RateLimit.Window(),
		KeyPrefix:         "ratelimit:contact",
	}, logger)

	// Register routes
	authHandler.RegisterRoutes(router, authMiddleware, loginLimiter)
	productHandler.RegisterRoutes(router, authMiddleware)
	statsHandler.RegisterRoutes(router, authMiddleware)
	contactHandler.RegisterRoutes(router, contactLimiter)
	cartHandler.RegisterRoutes(router)

	return router, nil
}

// connectRedis returns nil when Redis is disabled or unreachable; callers
// fall back to in-process alternatives
func connectRedis(cfg config.RedisConfig, logger *zap.Logger) *redis.Client {
	if !cfg.Enabled {
		logger.Info("Redis disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, continuing without it",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		client.Close()
		return nil
	}

	logger.Info("Connected to Redis", zap.String("addr", cfg.Addr()))
	return client
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
