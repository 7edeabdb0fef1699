package repository

import (
	"time"

	"github.com/yukikurage/bujo-tasks/internal/database"
	"github.com/yukikurage/bujo-tasks/internal/models"
	"github.com/yukikurage/bujo-tasks/internal/utils"
	"gorm.io/gorm"
)

const nonRecurring = "(tasks.recurrence_rule IS NULL OR tasks.recurrence_rule = '')"

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindAllByID finds every existing task among ids
func (r *GormTaskRepository) FindAllByID(ids []uint64) ([]models.Task, error) {
	if len(ids) == 0 {
		return []models.Task{}, nil
	}
	var tasks []models.Task
	if err := r.db.Where("id IN ?", ids).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByProject lists all tasks of a project
func (r *GormTaskRepository) FindByProject(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("project_id = ?", projectID).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Save inserts or updates a task
func (r *GormTaskRepository) Save(task *models.Task) error {
	return r.db.Save(task).Error
}

// DeleteAll hard deletes the given tasks
func (r *GormTaskRepository) DeleteAll(tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]uint64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return r.db.Where("id IN ?", ids).Delete(&models.Task{}).Error
}

// FindRecurringByAssignee lists the assignee's recurring tasks
func (r *GormTaskRepository) FindRecurringByAssignee(assignee string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("tasks.assigned_to = ?", assignee).
		Where("tasks.recurrence_rule IS NOT NULL AND tasks.recurrence_rule <> ''").
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindOfAssigneeBetween lists non-recurring tasks starting in [start, end)
func (r *GormTaskRepository) FindOfAssigneeBetween(assignee string, start, end time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("tasks.assigned_to = ?", assignee).
		Where(nonRecurring).
		Where("tasks.start_time >= ? AND tasks.start_time < ?", start.UTC(), end.UTC()).
		Order("tasks.start_time ASC, tasks.id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindReminding lists non-recurring tasks whose reminder is due
func (r *GormTaskRepository) FindReminding(assignee string, now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("tasks.assigned_to = ?", assignee).
		Where(nonRecurring).
		Where("tasks.reminder_date_time < ? AND tasks.start_time > ?", now.UTC(), now.UTC()).
		Order("tasks.start_time ASC, tasks.id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GormCompletedTaskRepository is a GORM implementation of CompletedTaskRepository
type GormCompletedTaskRepository struct {
	db *gorm.DB
}

// NewCompletedTaskRepository creates a new CompletedTaskRepository
func NewCompletedTaskRepository(db *gorm.DB) CompletedTaskRepository {
	return &GormCompletedTaskRepository{db: db}
}

// FindByID finds a completed task by ID
func (r *GormCompletedTaskRepository) FindByID(id uint64) (*models.CompletedTask, error) {
	var task models.CompletedTask
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByProject lists a project's completed tasks, most recently updated first
func (r *GormCompletedTaskRepository) FindByProject(projectID uint64, params utils.PaginationParams) ([]models.CompletedTask, int64, error) {
	query := r.db.Model(&models.CompletedTask{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.CompletedTask
	if err := query.Scopes(database.NewestFirst, database.Paginate(params)).Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// Save inserts or updates a completed task
func (r *GormCompletedTaskRepository) Save(task *models.CompletedTask) error {
	return r.db.Save(task).Error
}

// Delete removes a completed task
func (r *GormCompletedTaskRepository) Delete(task *models.CompletedTask) error {
	return r.db.Delete(task).Error
}
