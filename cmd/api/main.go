package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"depot-rest-api/internal/cache"
	"depot-rest-api/internal/config"
	"depot-rest-api/internal/handler"
	"depot-rest-api/internal/middleware"
	"depot-rest-api/internal/router"
	"depot-rest-api/internal/service"
	"depot-rest-api/internal/store"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	log := newLogger(cfg.App.Environment)
	defer log.Sync()

	log.Info("starting depot API",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment))

	if cfg.Auth.UsingDefaultSecret() {
		log.Warn("JWT_SECRET is not set, using the built-in signing key; do not run this in production")
	}

	// Open MySQL connection pool
	db, err := store.Open(cfg.Database.DSN(), cfg.Database.MaxOpenConns)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	log.Info("database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name))

	// Initialize product-catalog cache based on config
	var productCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		productCache = redisCache
		log.Info("redis cache initialized", zap.String("addr", cfg.Cache.RedisAddress()))
	case "none":
		log.Info("product cache disabled")
	default: // memory
		productCache = cache.NewMemoryCache()
		log.Info("in-memory cache initialized")
	}
	if productCache != nil {
		defer productCache.Close()
	}

	// Stores
	users := store.NewUsers(db)
	clients := store.NewClients(db)
	products := store.NewProducts(db)
	repositories := store.NewRepositories(db)
	inventory := store.NewInventory(db)
	orders := store.NewOrders(db)

	// Services
	tokens := service.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)

	// Handlers
	userHandler := handler.NewUserHandler(users, tokens, log)
	clientHandler := handler.NewClientHandler(clients, tokens, log)
	productHandler := handler.NewProductHandler(products, productCache, cfg.Cache.TTL, log)
	repositoryHandler := handler.NewRepositoryHandler(repositories, log)
	inventoryHandler := handler.NewInventoryHandler(inventory, log)
	orderHandler := handler.NewOrderHandler(orders, clients, log)

	// Router
	r := router.New(router.Config{
		Logger:            log,
		Auth:              middleware.NewAuth(tokens),
		UserHandler:       userHandler,
		ClientHandler:     clientHandler,
		ProductHandler:    productHandler,
		RepositoryHandler: repositoryHandler,
		InventoryHandler:  inventoryHandler,
		OrderHandler:      orderHandler,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Address()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}

	log.Info("server stopped")
}

func newLogger(environment string) *zap.Logger {
	if environment == "development" {
		log, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		return log
	}
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return log
}
