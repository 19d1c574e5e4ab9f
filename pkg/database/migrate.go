package database

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the given models' tables.
func AutoMigrate(db *gorm.DB, models ...interface{}) error {
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}
	return nil
}
