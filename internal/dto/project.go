package dto

import (
	"time"

	"github.com/yukikurage/bujo-tasks/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                 uint64 `json:"id"`
	Username           string `json:"username"`
	Timezone           string `json:"timezone"`
	ReminderBeforeTask int    `json:"reminder_before_task"`
}

// ProjectMemberDTO represents a member of a project's group
type ProjectMemberDTO struct {
	Username string `json:"username"`
	Accepted bool   `json:"accepted"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID        uint64             `json:"id"`
	Name      string             `json:"name"`
	Type      models.ProjectType `json:"type"`
	Owner     string             `json:"owner"`
	CreatedAt time.Time          `json:"created_at"`
	Members   []ProjectMemberDTO `json:"members"`
}

// CreateProjectRequest is the body of a project creation
type CreateProjectRequest struct {
	Name string             `json:"name" binding:"required,max=255"`
	Type models.ProjectType `json:"type"`
}

// InviteMemberRequest is the body of a project invitation
type InviteMemberRequest struct {
	Username string `json:"username" binding:"required"`
}

// UpdateSettingsRequest is the body of a user settings change
type UpdateSettingsRequest struct {
	Timezone           *string `json:"timezone"`
	ReminderBeforeTask *int    `json:"reminder_before_task"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                 user.ID,
		Username:           user.Name,
		Timezone:           user.Timezone,
		ReminderBeforeTask: user.ReminderBeforeTask,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	members := make([]ProjectMemberDTO, len(project.Members))
	for i, m := range project.Members {
		members[i] = ProjectMemberDTO{Username: m.Username, Accepted: m.Accepted}
	}
	return ProjectDTO{
		ID:        project.ID,
		Name:      project.Name,
		Type:      project.Type,
		Owner:     project.Owner,
		CreatedAt: project.CreatedAt,
		Members:   members,
	}
}
