package database

import (
	"fmt"
	"log/slog"
	"voidwebsite/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	config := &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}

	db, err := gorm.Open(postgres.Open(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connected")
	return db, nil
}

// Models lists every table the service owns.
func Models() []interface{} {
	return []interface{}{
		&models.AdminUser{},
		&models.PricingSetting{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderSet{},
		&models.OrderSetMember{},
		&models.Review{},
		&models.Product{},
		&models.Team{},
		&models.Player{},
		&models.Ambassador{},
		&models.ScheduleMatch{},
		&models.ScheduleEvent{},
		&models.DashboardItem{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
