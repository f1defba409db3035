package database

import (
	"gorm.io/gorm"

	"github.com/RazanRezq/munjiz/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.VerificationToken{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Invitation{},
		&models.Project{},
		&models.TaskStatus{},
		&models.TaskPriority{},
		&models.Task{},
		&models.Comment{},
		&models.Activity{},
		&models.Attachment{},
	)
}
