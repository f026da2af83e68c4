// Package app wires configuration into the order store and its backends.
// It is shared by the server and storectl.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"voidwebsite/internal/config"
	"voidwebsite/internal/firestore"
	"voidwebsite/internal/orderstate"
	"voidwebsite/internal/redis"
	"voidwebsite/internal/repository"
	"voidwebsite/internal/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// NewLogger returns a JSON slog logger at the named level.
func NewLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

// DefaultPricing is the pricing used until an admin saves settings.
func DefaultPricing(cfg *config.Config) services.Pricing {
	return services.Pricing{
		TaxRate:      decimal.NewFromFloat(cfg.TaxRate),
		ShippingFlat: decimal.NewFromFloat(cfg.ShippingFlat),
	}
}

// NewOrderStore builds the Store over the configured primary backend with
// Redis as its mirror. The returned close func releases the backend.
func NewOrderStore(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) (*orderstate.Store, func(), error) {
	var (
		orders orderstate.OrderRepository
		sets   orderstate.SetRepository
		closer = func() {}
	)

	switch cfg.OrderBackend {
	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			return nil, nil, err
		}
		orders = firestore.NewOrderRepository(client)
		sets = firestore.NewOrderSetRepository(client)
		closer = func() { client.Close() }
	case config.BackendPostgres, "":
		orders = repository.NewOrderRepository(db)
		sets = repository.NewOrderSetRepository(db)
	default:
		return nil, nil, fmt.Errorf("unknown ORDER_BACKEND %q", cfg.OrderBackend)
	}

	logger.Info("order store backend selected", "backend", cfg.OrderBackend)
	store := orderstate.NewStore(orders, sets, redis.NewMirror(redisClient), orderstate.Options{
		PersistTimeout: cfg.PersistTimeout,
		Logger:         logger,
	})
	return store, closer, nil
}
