package models

import (
	"time"
)

type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Timezone  string    `gorm:"type:varchar(64)" json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ReminderBeforeTask is the default reminder offset in minutes for new tasks.
	ReminderBeforeTask int `gorm:"not null;default:0" json:"reminder_before_task"`
}
