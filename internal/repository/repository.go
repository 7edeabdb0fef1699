package repository

import (
	"time"

	"github.com/yukikurage/bujo-tasks/internal/models"
	"github.com/yukikurage/bujo-tasks/internal/utils"
	"gorm.io/gorm"
)

// TaskRepository defines the interface for active task data access
type TaskRepository interface {
	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// FindAllByID finds every existing task among ids; missing ids are skipped
	FindAllByID(ids []uint64) ([]models.Task, error)

	// FindByProject lists all tasks of a project ordered by ID
	FindByProject(projectID uint64) ([]models.Task, error)

	// Save inserts or updates a task
	Save(task *models.Task) error

	// DeleteAll hard deletes the given tasks
	DeleteAll(tasks []models.Task) error

	// FindRecurringByAssignee lists the assignee's tasks that carry a recurrence rule
	FindRecurringByAssignee(assignee string) ([]models.Task, error)

	// FindOfAssigneeBetween lists non-recurring tasks starting in [start, end)
	FindOfAssigneeBetween(assignee string, start, end time.Time) ([]models.Task, error)

	// FindReminding lists non-recurring tasks whose reminder passed but which have not started
	FindReminding(assignee string, now time.Time) ([]models.Task, error)
}

// CompletedTaskRepository defines the interface for completed task data access
type CompletedTaskRepository interface {
	// FindByID finds a completed task by ID
	FindByID(id uint64) (*models.CompletedTask, error)

	// FindByProject lists a project's completed tasks, most recently updated first
	FindByProject(projectID uint64, params utils.PaginationParams) ([]models.CompletedTask, int64, error)

	// Save inserts or updates a completed task
	Save(task *models.CompletedTask) error

	// Delete removes a completed task
	Delete(task *models.CompletedTask) error
}

// ProjectTasksRepository stores the serialized task hierarchy of each project
type ProjectTasksRepository interface {
	// FindByProjectID finds the hierarchy row of a project
	FindByProjectID(projectID uint64) (*models.ProjectTasks, error)

	// FindByProjectIDForUpdate finds the hierarchy row and locks it until the transaction ends
	FindByProjectIDForUpdate(projectID uint64) (*models.ProjectTasks, error)

	// Save inserts or updates the hierarchy row
	Save(projectTasks *models.ProjectTasks) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project with its members
	FindByID(id uint64) (*models.Project, error)

	// AddMember adds a member to a project's group
	AddMember(member *models.ProjectMember) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// Save updates an existing user
	Save(user *models.User) error

	// FindByName finds a user by username
	FindByName(name string) (*models.User, error)

	// GetDefaultReminderOffset returns how long before a task's start the user is reminded by default
	GetDefaultReminderOffset(username string) (time.Duration, error)
}

// Repositories groups the repositories that share one database handle
type Repositories struct {
	Tasks          TaskRepository
	CompletedTasks CompletedTaskRepository
	ProjectTasks   ProjectTasksRepository
	Projects       ProjectRepository
	Users          UserRepository
}

// Store hands out repositories and runs all-or-nothing units of work
type Store interface {
	// Repositories returns repositories bound to the base handle
	Repositories() Repositories

	// Transaction runs fn with repositories bound to one transaction; it commits
	// when fn returns nil and rolls back otherwise
	Transaction(fn func(repos Repositories) error) error
}

// GormStore is a GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

func newRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Tasks:          NewTaskRepository(db),
		CompletedTasks: NewCompletedTaskRepository(db),
		ProjectTasks:   NewProjectTasksRepository(db),
		Projects:       NewProjectRepository(db),
		Users:          NewUserRepository(db),
	}
}

// Repositories returns repositories bound to the base handle
func (s *GormStore) Repositories() Repositories {
	return newRepositories(s.db)
}

// Transaction runs fn inside a database transaction
func (s *GormStore) Transaction(fn func(repos Repositories) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(newRepositories(tx))
	})
}
