package models

import "time"

type ProjectType string

const (
	ProjectTypeTodo   ProjectType = "TODO"
	ProjectTypeNote   ProjectType = "NOTE"
	ProjectTypeLedger ProjectType = "LEDGER"
)

type Project struct {
	ID        uint64      `gorm:"primarykey" json:"id"`
	Name      string      `gorm:"type:varchar(255);not null" json:"name"`
	Type      ProjectType `gorm:"type:varchar(20);not null;default:'TODO'" json:"type"`
	Owner     string      `gorm:"type:varchar(255);not null;index" json:"owner"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`

	// Relations
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
}

// ProjectMember is a user of the project's group. Only accepted members
// see the project and receive notifications.
type ProjectMember struct {
	ProjectID uint64 `gorm:"primarykey;autoIncrement:false" json:"project_id"`
	Username  string `gorm:"primarykey;type:varchar(255)" json:"username"`
	Accepted  bool   `gorm:"not null;default:false" json:"accepted"`
}

// HasAccess reports whether username owns the project or is an accepted member.
func (p *Project) HasAccess(username string) bool {
	if p.Owner == username {
		return true
	}
	for _, m := range p.Members {
		if m.Username == username && m.Accepted {
			return true
		}
	}
	return false
}

// ProjectTasks stores the serialized task hierarchy of one project.
type ProjectTasks struct {
	ProjectID uint64    `gorm:"primarykey;autoIncrement:false" json:"project_id"`
	Tasks     string    `gorm:"type:text;not null" json:"tasks"`
	UpdatedAt time.Time `json:"updated_at"`
}
