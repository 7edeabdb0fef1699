package database

import (
	"fmt"

	"github.com/yukikurage/bujo-tasks/internal/models"
	"gorm.io/gorm"
)

// Models lists every persisted model in migration order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.CompletedTask{},
		&models.ProjectTasks{},
	}
}

// AutoMigrate creates or updates the schema of every model
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
