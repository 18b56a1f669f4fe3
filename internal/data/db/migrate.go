package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/sitebuilder-backend/internal/data/models"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
