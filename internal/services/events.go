package services

import (
	"context"

	"github.com/yukikurage/bujo-tasks/internal/logger"
)

// Event tells Recipient that something happened to a task
type Event struct {
	Recipient string `json:"recipient"`
	TaskID    uint64 `json:"task_id"`
	TaskName  string `json:"task_name"`
}

// Notifier delivers events produced by task operations
type Notifier interface {
	Notify(ctx context.Context, kind string, events []Event)
}

// LogNotifier writes events to the structured log
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, kind string, events []Event) {
	for _, e := range events {
		logger.Ctx(ctx).Info().
			Str("kind", kind).
			Str("recipient", e.Recipient).
			Uint64("task_id", e.TaskID).
			Str("task_name", e.TaskName).
			Msg("notification")
	}
}

// recipients lists every accepted collaborator of the project, the owner
// included, except the requester
func recipients(projectOwner string, members []string, requester string) []string {
	seen := map[string]bool{requester: true}
	var out []string
	for _, name := range append([]string{projectOwner}, members...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
