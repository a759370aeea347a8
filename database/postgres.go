package database

import (
	"log/slog"
	"os"

	"fintrack-backend/config"
	"fintrack-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	var err error
	DB, err = gorm.Open(postgres.Open(config.AppConfig.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	slog.Info("database connected")

	err = DB.AutoMigrate(
		&models.SplitExpense{},
		&models.ExpenseSplit{},
		&models.Debt{},
		&models.Participant{},
	)
	if err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	slog.Info("database migrated")
}
