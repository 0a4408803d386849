package database

import (
	"gatherly/internal/bookings"
	"gatherly/internal/categories"
	"gatherly/internal/events"
	"gatherly/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults on the models need the extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&categories.Category{},
		&events.Event{},
		&bookings.Booking{},
	)
}
