package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/mcq-bank-service/internal/models"
)

// AutoMigrate creates or updates the four collections' tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Topic{},
		&models.Subtopic{},
		&models.Question{},
		&models.Textbook{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
