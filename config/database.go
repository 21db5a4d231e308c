package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/aamoria/wellness-api/models"
)

// Connect opens the database selected by DB_DRIVER.
func Connect(env Environment) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch env.DBDriver {
	case "postgres":
		dialector = postgres.Open(env.DBURL)
	case "sqlite":
		dialector = sqlite.Open(env.DBURL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}

	level := gormLogger.Warn
	if !env.IsDevelopment {
		level = gormLogger.Error
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Journey{},
		&models.QuizQuestion{},
	); err != nil {
		return fmt.Errorf("failed to auto migrate database: %w", err)
	}
	return nil
}
