// File: internal/platform/database/migrate.go
package database

import (
	"fmt"

	"streamhub_backend/internal/allowlist"
	"streamhub_backend/internal/news"
	"streamhub_backend/internal/streamer"
	"streamhub_backend/internal/user"

	"gorm.io/gorm"
)

// AutoMigrate brings the schema up to date for every registered model.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&user.User{},
		&allowlist.ApprovedEmail{},
		&streamer.Profile{},
		&streamer.Status{},
		&news.Article{},
	)
	if err != nil {
		return fmt.Errorf("running schema migration: %w", err)
	}
	return nil
}
