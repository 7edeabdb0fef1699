// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/bujo-tasks/internal/database"
	"github.com/yukikurage/bujo-tasks/internal/hierarchy"
	"github.com/yukikurage/bujo-tasks/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that lives until the
// test ends. A single connection keeps every query on the same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser stores a user with a default reminder offset in minutes
func CreateUser(t *testing.T, db *gorm.DB, name string, reminderBefore int) *models.User {
	t.Helper()
	user := &models.User{Name: name, Timezone: "UTC", ReminderBeforeTask: reminderBefore}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProject stores a project with an empty hierarchy and the given
// accepted members
func CreateProject(t *testing.T, db *gorm.DB, name string, projectType models.ProjectType, owner string, members ...string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, Type: projectType, Owner: owner}
	require.NoError(t, db.Create(project).Error)
	for _, m := range members {
		require.NoError(t, db.Create(&models.ProjectMember{ProjectID: project.ID, Username: m, Accepted: true}).Error)
	}
	require.NoError(t, db.Create(&models.ProjectTasks{ProjectID: project.ID, Tasks: hierarchy.EmptyForest}).Error)
	return project
}

// Forest returns the stored hierarchy of a project
func Forest(t *testing.T, db *gorm.DB, projectID uint64) string {
	t.Helper()
	var pt models.ProjectTasks
	require.NoError(t, db.Where("project_id = ?", projectID).First(&pt).Error)
	return pt.Tasks
}

// SetForest overwrites the stored hierarchy of a project
func SetForest(t *testing.T, db *gorm.DB, projectID uint64, tasks string) {
	t.Helper()
	require.NoError(t, db.Model(&models.ProjectTasks{}).
		Where("project_id = ?", projectID).
		Update("tasks", tasks).Error)
}
