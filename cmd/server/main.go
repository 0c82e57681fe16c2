package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/brookins/tradewind/internal"
	"github.com/brookins/tradewind/internal/cookie"
	"github.com/brookins/tradewind/internal/handler"
	"github.com/brookins/tradewind/internal/handler/api"
	"github.com/brookins/tradewind/internal/handler/storefront"
	"github.com/brookins/tradewind/internal/middleware"
	"github.com/brookins/tradewind/internal/postgres"
	"github.com/brookins/tradewind/internal/router"
	"github.com/brookins/tradewind/internal/routes"
	"github.com/brookins/tradewind/internal/service"
	"github.com/brookins/tradewind/internal/shipping"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Run migrations over database/sql, which goose requires
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		sqlDB.Close()
		return fmt.Errorf("migration failed: %w", err)
	}
	sqlDB.Close()
	logger.Info("Database migrations completed")

	// pgx pool for the application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	db := postgres.NewDB(pool, logger)
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("pool ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Stores and services
	productStore := postgres.NewProductStore(db, cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize)
	productService := service.NewProductService(productStore)
	cartService := service.NewCartService(db)

	// Templates
	logger.Info("Loading templates...")
	renderer, err := handler.NewRenderer("web/templates", logger)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	// Cookies are secure outside development
	cookies := cookie.NewConfig(cfg.Env == "prod")

	// Display-only shipping quotes for the simulated checkout
	quoter := shipping.NewFlatRateQuoter([]shipping.FlatRate{
		{Code: "standard", Name: "Standard Shipping", Cost: 7.95, DaysMin: 5, DaysMax: 7},
		{Code: "express", Name: "Express Shipping", Cost: 14.95, DaysMin: 2, DaysMax: 3},
	}, 50)

	// Handlers
	storefrontHandler := storefront.New(productService, cartService, quoter, renderer, cookies, storefront.Config{
		StoreName:     cfg.StoreName,
		FeaturedCount: cfg.Catalog.FeaturedCount,
	}, logger)
	cartHandler := api.NewCartHandler(cartService, cookies, logger)

	// Middleware
	metrics := middleware.NewMetrics("tradewind")

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env != "prod" {
		securityConfig.ContentSecurityPolicy = ""
		securityConfig.HSTSMaxAge = 0
	}

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		router.Logger(logger),
	)

	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.Ping(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterStorefrontRoutes(r, routes.StorefrontDeps{
		Handler:   storefrontHandler,
		StaticDir: "./web/static",
	})
	routes.RegisterAPIRoutes(r, routes.APIDeps{
		CartHandler: cartHandler,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
