package data

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the bot uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Setting{}, &PendingRow{}, &PublishedRow{}, &BannedUser{}, &CreditedUser{}); err != nil {
		return fmt.Errorf("data: migrate: %w", err)
	}
	for _, table := range []string{tableAdminVotes, tableCommunityVotes} {
		if err := db.Table(table).AutoMigrate(&VoteRow{}); err != nil {
			return fmt.Errorf("data: migrate %s: %w", table, err)
		}
	}
	return nil
}

// Reset drops the moderation tables and recreates them. Settings survive.
func Reset(db *gorm.DB) error {
	m := db.Migrator()
	for _, table := range []any{&PendingRow{}, tableAdminVotes, &PublishedRow{}, tableCommunityVotes, &BannedUser{}, &CreditedUser{}} {
		if err := m.DropTable(table); err != nil {
			return fmt.Errorf("data: drop %v: %w", table, err)
		}
	}
	return Migrate(db)
}
