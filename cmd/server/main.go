package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"voidwebsite/internal/app"
	"voidwebsite/internal/config"
	"voidwebsite/internal/database"
	"voidwebsite/internal/handlers"
	"voidwebsite/internal/migrations"
	"voidwebsite/internal/models"
	"voidwebsite/internal/orderstate"
	"voidwebsite/internal/payment"
	"voidwebsite/internal/redis"
	"voidwebsite/internal/repository"
	"voidwebsite/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := app.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, gin.Mode() != gin.ReleaseMode)
	if err != nil {
		fatal("failed to connect to database", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		fatal("failed to migrate database", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		fatal("failed to connect to redis", err)
	}
	defer redisClient.Close()

	store, closeStore, err := app.NewOrderStore(ctx, cfg, db, redisClient, logger)
	if err != nil {
		fatal("failed to open order store", err)
	}
	defer closeStore()
	if err := store.Load(ctx); err != nil {
		fatal("failed to load orders", err)
	}

	reconciler := orderstate.NewReconciler(store, cfg.ReconcileInterval, logger)
	go reconciler.Run(ctx)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	pricingService := services.NewPricingService(settingsRepo, app.DefaultPricing(cfg), logger)
	carts := redis.NewCartStore(redisClient, cfg.CartTTL)
	checkoutService := services.NewCheckoutService(store, carts, redisClient, payment.NewStripeGateway(cfg.StripeSecretKey), pricingService, services.CheckoutOptions{
		Currency:    cfg.Currency,
		CheckoutTTL: cfg.CheckoutTTL,
		Logger:      logger,
	})

	router := handlers.NewRouter(handlers.Dependencies{
		Products:    services.NewResourceService[models.Product](repository.NewCRUDRepository[models.Product](db, "name asc"), services.ValidateProduct),
		Reviews:     services.NewReviewService(reviewRepo),
		Teams:       services.NewTeamService(teamRepo),
		Matches:     services.NewResourceService[models.ScheduleMatch](repository.NewCRUDRepository[models.ScheduleMatch](db, "date asc"), services.ValidateMatch),
		Events:      services.NewResourceService[models.ScheduleEvent](repository.NewCRUDRepository[models.ScheduleEvent](db, "date asc"), services.ValidateEvent),
		Ambassadors: services.NewResourceService[models.Ambassador](repository.NewCRUDRepository[models.Ambassador](db, "name asc"), services.ValidateAmbassador),
		Dashboard:   services.NewResourceService[models.DashboardItem](repository.NewCRUDRepository[models.DashboardItem](db, "title asc"), services.ValidateDashboardItem),
		Orders:      services.NewOrderService(store),
		Sets:        store,
		Reconciler:  reconciler,
		Checkout:    checkoutService,
		Pricing:     pricingService,
		Carts:       carts,
		Auth:        services.NewAuthService(userService, cfg.JWTSecret),
		Users:       userService,
		Storefront: handlers.StorefrontConfig{
			StripePublishableKey: cfg.StripePublicKey,
			Currency:             cfg.Currency,
		},
		AllowedOrigins:  cfg.AllowedOrigins,
		CheckoutLimiter: handlers.NewRateLimiter(cfg.CheckoutRateLimit, cfg.CheckoutRateBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("failed to start server", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	// last chance for writes that failed while serving
	result := reconciler.Flush(shutdownCtx)
	slog.Info("final reconcile", "synced", len(result.Synced), "failed", len(result.Failed))
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
