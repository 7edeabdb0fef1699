package repository

import (
	"time"

	"github.com/yukikurage/bujo-tasks/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Save updates an existing user
func (r *GormUserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// FindByName finds a user by username
func (r *GormUserRepository) FindByName(name string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("name = ?", name).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetDefaultReminderOffset returns the user's default reminder offset
func (r *GormUserRepository) GetDefaultReminderOffset(username string) (time.Duration, error) {
	user, err := r.FindByName(username)
	if err != nil {
		return 0, err
	}
	return time.Duration(user.ReminderBeforeTask) * time.Minute, nil
}
