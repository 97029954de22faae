package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the Postgres database behind dsn.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

// Migrate creates or updates the tables for all persisted records.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRecord{},
		&listingRecord{},
		&bookingRecord{},
		&reviewRecord{},
	)
}
