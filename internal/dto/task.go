package dto

import (
	"time"

	"github.com/yukikurage/bujo-tasks/internal/models"
	"github.com/yukikurage/bujo-tasks/internal/services"
	"github.com/yukikurage/bujo-tasks/internal/utils"
)

// ReminderSettingDTO represents a reminder setting in requests and responses
type ReminderSettingDTO struct {
	Date   *string `json:"date,omitempty"`
	Time   *string `json:"time,omitempty"`
	Before *int    `json:"before,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               uint64             `json:"id"`
	ProjectID        uint64             `json:"project_id"`
	Owner            string             `json:"owner"`
	AssignedTo       string             `json:"assigned_to"`
	Name             string             `json:"name"`
	DueDate          *string            `json:"due_date"`
	DueTime          *string            `json:"due_time"`
	Timezone         string             `json:"timezone"`
	Duration         int                `json:"duration"`
	StartTime        *time.Time         `json:"start_time"`
	EndTime          *time.Time         `json:"end_time"`
	RecurrenceRule   *string            `json:"recurrence_rule"`
	ReminderSetting  ReminderSettingDTO `json:"reminder_setting"`
	ReminderDateTime *time.Time         `json:"reminder_date_time"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// TaskNodeDTO is a task with its ordered sub tasks
type TaskNodeDTO struct {
	TaskDTO
	SubTasks []TaskNodeDTO `json:"sub_tasks"`
}

// CompletedTaskListResponse represents a paginated list of completed tasks
type CompletedTaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// CreateTaskRequest is the body of a task creation
type CreateTaskRequest struct {
	Name            string              `json:"name" binding:"required,max=500"`
	AssignedTo      string              `json:"assigned_to"`
	DueDate         *string             `json:"due_date"`
	DueTime         *string             `json:"due_time"`
	Duration        int                 `json:"duration" binding:"min=0"`
	Timezone        string              `json:"timezone"`
	RecurrenceRule  *string             `json:"recurrence_rule"`
	ReminderSetting *ReminderSettingDTO `json:"reminder_setting"`
}

// MoveTaskRequest is the body of a task move
type MoveTaskRequest struct {
	TargetProjectID uint64 `json:"target_project_id" binding:"required"`
}

// EventDTO represents a notification produced by an operation
type EventDTO struct {
	Recipient string `json:"recipient"`
	TaskID    uint64 `json:"task_id"`
	TaskName  string `json:"task_name"`
}

// Conversion functions

// ToReminderSettingDTO converts a ReminderSetting model to its DTO
func ToReminderSettingDTO(r models.ReminderSetting) ReminderSettingDTO {
	return ReminderSettingDTO{Date: r.Date, Time: r.Time, Before: r.Before}
}

// ToModel converts the DTO to a ReminderSetting
func (r ReminderSettingDTO) ToModel() models.ReminderSetting {
	return models.ReminderSetting{Date: r.Date, Time: r.Time, Before: r.Before}.Clone()
}

func toTaskDTO(id uint64, f models.TaskFields, createdAt, updatedAt time.Time) TaskDTO {
	return TaskDTO{
		ID:               id,
		ProjectID:        f.ProjectID,
		Owner:            f.Owner,
		AssignedTo:       f.AssignedTo,
		Name:             f.Name,
		DueDate:          f.DueDate,
		DueTime:          f.DueTime,
		Timezone:         f.Timezone,
		Duration:         f.Duration,
		StartTime:        f.StartTime,
		EndTime:          f.EndTime,
		RecurrenceRule:   f.RecurrenceRule,
		ReminderSetting:  ToReminderSettingDTO(f.ReminderSetting),
		ReminderDateTime: f.ReminderDateTime,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return toTaskDTO(task.ID, task.TaskFields, task.CreatedAt, task.UpdatedAt)
}

// ToCompletedTaskDTO converts a CompletedTask model to TaskDTO
func ToCompletedTaskDTO(task models.CompletedTask) TaskDTO {
	return toTaskDTO(task.ID, task.TaskFields, task.CreatedAt, task.UpdatedAt)
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}

// ToTaskNodeDTOs converts a task tree
func ToTaskNodeDTOs(nodes []*services.TaskNode) []TaskNodeDTO {
	out := make([]TaskNodeDTO, len(nodes))
	for i, n := range nodes {
		out[i] = TaskNodeDTO{
			TaskDTO:  ToTaskDTO(n.Task),
			SubTasks: ToTaskNodeDTOs(n.SubTasks),
		}
	}
	return out
}

// ToCompletedTaskListResponse converts a page of completed tasks
func ToCompletedTaskListResponse(tasks []models.CompletedTask, params utils.PaginationParams, total int64) CompletedTaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		items[i] = ToCompletedTaskDTO(t)
	}
	return CompletedTaskListResponse{
		Tasks:      items,
		Pagination: params.Response(total, len(tasks)),
	}
}

// ToEventDTOs converts notification events
func ToEventDTOs(events []services.Event) []EventDTO {
	out := make([]EventDTO, len(events))
	for i, e := range events {
		out[i] = EventDTO{Recipient: e.Recipient, TaskID: e.TaskID, TaskName: e.TaskName}
	}
	return out
}
