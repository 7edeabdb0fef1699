package constants

// Context keys
const (
	ContextKeyRequester = "requester"
	SessionKeyUsername  = "username"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Projection windows
const (
	// RecurringReminderHorizonHours bounds how far ahead recurring tasks are
	// expanded when looking for due reminders
	RecurringReminderHorizonHours = 48
)
