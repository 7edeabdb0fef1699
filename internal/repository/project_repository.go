package repository

import (
	"github.com/yukikurage/bujo-tasks/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project with its members
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Members").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// AddMember adds a member to a project's group, accepting an existing invitation
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"accepted"}),
		}).
		Create(member).Error
}

// GormProjectTasksRepository is a GORM implementation of ProjectTasksRepository
type GormProjectTasksRepository struct {
	db *gorm.DB
}

// NewProjectTasksRepository creates a new ProjectTasksRepository
func NewProjectTasksRepository(db *gorm.DB) ProjectTasksRepository {
	return &GormProjectTasksRepository{db: db}
}

// FindByProjectID finds the hierarchy row of a project
func (r *GormProjectTasksRepository) FindByProjectID(projectID uint64) (*models.ProjectTasks, error) {
	var pt models.ProjectTasks
	if err := r.db.Where("project_id = ?", projectID).First(&pt).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

// FindByProjectIDForUpdate finds the hierarchy row with a row lock so that
// structural edits of one project are serialized
func (r *GormProjectTasksRepository) FindByProjectIDForUpdate(projectID uint64) (*models.ProjectTasks, error) {
	var pt models.ProjectTasks
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", projectID).
		First(&pt).Error
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

// Save inserts or updates the hierarchy row
func (r *GormProjectTasksRepository) Save(projectTasks *models.ProjectTasks) error {
	return r.db.Save(projectTasks).Error
}
