package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/bujo-tasks/internal/models"
	"github.com/yukikurage/bujo-tasks/internal/repository"
	"github.com/yukikurage/bujo-tasks/internal/schedule"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameRequired      = errors.New("username is required")
	ErrInvalidReminderOffset = errors.New("reminder offset cannot be negative")
)

// UserService manages the per-user settings the task engine reads.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UserSettings holds the fields a user may change. Nil fields are kept.
type UserSettings struct {
	Timezone           *string
	ReminderBeforeTask *int
}

// GetOrCreate returns the user's record, creating it with defaults on first use.
func (s *UserService) GetOrCreate(username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	user, err := s.users.FindByName(username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user = &models.User{Name: username, Timezone: "UTC"}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// UpdateSettings changes the user's timezone and default reminder offset.
func (s *UserService) UpdateSettings(username string, settings UserSettings) (*models.User, error) {
	user, err := s.GetOrCreate(username)
	if err != nil {
		return nil, err
	}

	if settings.Timezone != nil {
		if _, err := schedule.Location(*settings.Timezone); err != nil {
			return nil, err
		}
		user.Timezone = *settings.Timezone
	}
	if settings.ReminderBeforeTask != nil {
		if *settings.ReminderBeforeTask < 0 {
			return nil, ErrInvalidReminderOffset
		}
		user.ReminderBeforeTask = *settings.ReminderBeforeTask
	}

	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
