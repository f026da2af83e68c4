package migrations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"voidwebsite/internal/database"
	"voidwebsite/internal/models"
	"voidwebsite/internal/repository"
	"voidwebsite/internal/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Defaults is the data a fresh database is seeded with.
type Defaults struct {
	AdminEmail    string
	AdminName     string
	AdminPassword string
	Pricing       services.Pricing
}

// RunMigrations brings the schema up to date. Tables are never dropped.
func RunMigrations(db *gorm.DB) error {
	slog.Info("running database migrations")
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("database migrations completed")
	return nil
}

// SeedDefaults creates the admin account and pricing rows if they are
// missing. Existing rows are left alone.
func SeedDefaults(ctx context.Context, db *gorm.DB, d Defaults) error {
	users := services.NewUserService(repository.NewUserRepository(db))
	_, created, err := users.EnsureAdmin(ctx, d.AdminEmail, d.AdminName, d.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if created {
		slog.Info("admin user created", "email", d.AdminEmail)
	} else {
		slog.Info("admin user already exists", "email", d.AdminEmail)
	}

	settings := repository.NewSettingsRepository(db)
	for name, value := range map[string]decimal.Decimal{
		models.SettingTaxRate:      d.Pricing.TaxRate,
		models.SettingShippingFlat: d.Pricing.ShippingFlat,
	} {
		_, err := settings.GetSetting(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := settings.UpsertSetting(ctx, &models.PricingSetting{Name: name, Value: value}); err != nil {
			return fmt.Errorf("failed to seed %s: %w", name, err)
		}
		slog.Info("pricing setting seeded", "name", name, "value", value.String())
	}
	return nil
}
