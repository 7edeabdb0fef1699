package models

import (
	"time"

	"github.com/yukikurage/bujo-tasks/internal/schedule"
)

// ReminderSetting is one of: no reminder (all fields nil), an absolute
// reminder (Date and optional Time in the task's timezone), or a reminder
// Before minutes ahead of the task's start.
type ReminderSetting struct {
	Date   *string `gorm:"column:reminder_date;type:varchar(10)" json:"date,omitempty"`
	Time   *string `gorm:"column:reminder_time;type:varchar(5)" json:"time,omitempty"`
	Before *int    `gorm:"column:reminder_before" json:"before,omitempty"`
}

// NoReminder returns the empty setting.
func NoReminder() ReminderSetting {
	return ReminderSetting{}
}

// RemindBefore returns a setting relative to the task start.
func RemindBefore(minutes int) ReminderSetting {
	return ReminderSetting{Before: &minutes}
}

// IsNone reports whether no reminder is configured.
func (r ReminderSetting) IsNone() bool {
	return r.Date == nil && r.Before == nil
}

// InstantFor resolves the reminder instant for a task starting at start.
// An absolute date wins over a relative offset. A relative reminder on a
// task without start has no instant.
func (r ReminderSetting) InstantFor(start *time.Time, timezone string) (*time.Time, error) {
	switch {
	case r.Date != nil:
		at, err := schedule.At(*r.Date, r.Time, timezone)
		if err != nil {
			return nil, err
		}
		return &at, nil
	case r.Before != nil && start != nil:
		at := start.Add(-time.Duration(*r.Before) * time.Minute)
		return &at, nil
	default:
		return nil, nil
	}
}

// Clone returns a copy sharing no pointers with r.
func (r ReminderSetting) Clone() ReminderSetting {
	return ReminderSetting{
		Date:   copyPtr(r.Date),
		Time:   copyPtr(r.Time),
		Before: copyPtr(r.Before),
	}
}
