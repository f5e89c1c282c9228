package database

import (
	"log"

	"mindspace-notes/mindspace/models"

	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date. AutoMigrate only adds columns,
// so rows created before the reminder fields existed keep their id, created_at
// and trash state, with has_reminder defaulting to false and reminder_time
// to NULL.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Note{},
		&models.ReminderJob{},
	)

	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	return nil
}
