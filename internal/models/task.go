package models

import (
	"time"

	"github.com/yukikurage/bujo-tasks/internal/schedule"
)

// TaskFields are the columns shared by active and completed tasks.
type TaskFields struct {
	ProjectID        uint64          `gorm:"not null;index" json:"project_id"`
	Owner            string          `gorm:"type:varchar(255);not null" json:"owner"`
	AssignedTo       string          `gorm:"type:varchar(255);index" json:"assigned_to"`
	Name             string          `gorm:"type:varchar(500);not null" json:"name"`
	DueDate          *string         `gorm:"type:varchar(10)" json:"due_date"`
	DueTime          *string         `gorm:"type:varchar(5)" json:"due_time"`
	Timezone         string          `gorm:"type:varchar(64)" json:"timezone"`
	Duration         int             `json:"duration"`
	StartTime        *time.Time      `gorm:"index" json:"start_time"`
	EndTime          *time.Time      `json:"end_time"`
	RecurrenceRule   *string         `gorm:"type:text" json:"recurrence_rule"`
	ReminderSetting  ReminderSetting `gorm:"embedded" json:"reminder_setting"`
	ReminderDateTime *time.Time      `json:"reminder_date_time"`
}

// Task is an active task row.
type Task struct {
	ID uint64 `gorm:"primarykey" json:"id"`
	TaskFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompletedTask keeps the identifier the task had while active.
type CompletedTask struct {
	ID uint64 `gorm:"primarykey;autoIncrement:false" json:"id"`
	TaskFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCompletedTask copies an active task into the completed set.
func NewCompletedTask(t *Task) *CompletedTask {
	return &CompletedTask{ID: t.ID, TaskFields: t.TaskFields.clone()}
}

// IsRecurring reports whether the task carries a recurrence rule.
func (f *TaskFields) IsRecurring() bool {
	return f.RecurrenceRule != nil && *f.RecurrenceRule != ""
}

// Reschedule recomputes the derived start, end and reminder instants from
// the due date, due time, timezone, duration and reminder setting.
func (f *TaskFields) Reschedule() error {
	f.StartTime, f.EndTime = nil, nil
	if f.DueDate != nil {
		start, end, err := schedule.Window(*f.DueDate, f.DueTime, f.Timezone, f.Duration)
		if err != nil {
			return err
		}
		f.StartTime, f.EndTime = utcPtr(start), utcPtr(end)
	}
	return f.RefreshReminder()
}

// RefreshReminder recomputes ReminderDateTime from the current start instant.
func (f *TaskFields) RefreshReminder() error {
	at, err := f.ReminderSetting.InstantFor(f.StartTime, f.Timezone)
	if err != nil {
		return err
	}
	f.ReminderDateTime = nil
	if at != nil {
		f.ReminderDateTime = utcPtr(*at)
	}
	return nil
}

// IsReminderDue reports whether the reminder has passed while the task has not started yet.
func (f *TaskFields) IsReminderDue(now time.Time) bool {
	if f.ReminderDateTime == nil || f.StartTime == nil {
		return false
	}
	return f.ReminderDateTime.Before(now) && f.StartTime.After(now)
}

// Clone returns a deep copy; the copy shares no pointers with t.
func (t *Task) Clone() *Task {
	c := *t
	c.TaskFields = t.TaskFields.clone()
	return &c
}

func (f TaskFields) clone() TaskFields {
	c := f
	c.DueDate = copyPtr(f.DueDate)
	c.DueTime = copyPtr(f.DueTime)
	c.StartTime = copyPtr(f.StartTime)
	c.EndTime = copyPtr(f.EndTime)
	c.RecurrenceRule = copyPtr(f.RecurrenceRule)
	c.ReminderDateTime = copyPtr(f.ReminderDateTime)
	c.ReminderSetting = f.ReminderSetting.Clone()
	return c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Times are stored in UTC at second precision so that range predicates
// compare consistently on every driver.
func utcPtr(t time.Time) *time.Time {
	u := t.UTC().Truncate(time.Second)
	return &u
}
