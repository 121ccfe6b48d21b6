package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ed9408/minerva-api/internal/models"
)

// Migrate brings the schema up to date and releases the connection it used.
// Runtime queries go through the pgx pool, not gorm.
func Migrate(databaseURL string) error {
	gormDB, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open migration db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("get migration sql db: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	if err := gormDB.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
