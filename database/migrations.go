package database

import (
	"gorm.io/gorm"

	"github.com/Damilola-codes/lenno-sub000/models"
)

// Migrate runs AutoMigrate for the marketplace schema plus the token
// revocation table used when Redis is not configured.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Proposal{},
		&models.Contract{},
		&models.Milestone{},
		&models.Transaction{},
	); err != nil {
		return err
	}
	return db.Exec(
		"CREATE TABLE IF NOT EXISTS revoked_tokens (id VARCHAR(96) PRIMARY KEY, revoked_at DATETIME NOT NULL)",
	).Error
}
