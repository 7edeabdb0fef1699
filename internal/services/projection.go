package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/yukikurage/bujo-tasks/internal/constants"
	"github.com/yukikurage/bujo-tasks/internal/models"
	"github.com/yukikurage/bujo-tasks/internal/recurrence"
	"github.com/yukikurage/bujo-tasks/internal/schedule"
)

// Occurrences expands a recurring task into its occurrences starting in
// [start, end). Each occurrence is a copy of task with the due date, due
// time and derived instants of that occurrence; task itself is not modified.
func Occurrences(task *models.Task, start, end time.Time, limits recurrence.Limits) ([]models.Task, error) {
	if !task.IsRecurring() {
		return nil, nil
	}

	rule, err := taskRule(&task.TaskFields)
	if err != nil {
		return nil, err
	}
	instants, err := rule.Between(start, end, limits)
	if err != nil {
		return nil, fmt.Errorf("failed to expand task %d: %w", task.ID, err)
	}

	out := make([]models.Task, 0, len(instants))
	for _, at := range instants {
		date, clock, err := schedule.LocalDateTime(at, task.Timezone)
		if err != nil {
			return nil, err
		}

		occ := task.Clone()
		occ.DueDate = &date
		occ.DueTime = &clock
		if err := occ.Reschedule(); err != nil {
			return nil, err
		}
		out = append(out, *occ)
	}
	return out, nil
}

// taskRule parses the task's rule. A rule without DTSTART starts at the
// task's due instant; without a due date such a rule is invalid.
func taskRule(f *models.TaskFields) (*recurrence.Rule, error) {
	var anchor time.Time
	if f.DueDate != nil {
		at, err := schedule.At(*f.DueDate, f.DueTime, f.Timezone)
		if err != nil {
			return nil, err
		}
		anchor = at
	}
	return recurrence.ParseAt(*f.RecurrenceRule, f.Timezone, anchor)
}

// GetTasksBetween returns the assignee's tasks starting in [start, end):
// stored tasks plus occurrences of recurring tasks, ordered by start.
func (s *TaskService) GetTasksBetween(assignee string, start, end time.Time) ([]models.Task, error) {
	if !end.After(start) {
		return []models.Task{}, nil
	}

	repos := s.store.Repositories()

	tasks, err := repos.Tasks.FindOfAssigneeBetween(assignee, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}

	occurrences, err := s.recurringBetween(assignee, start, end)
	if err != nil {
		return nil, err
	}

	tasks = append(tasks, occurrences...)
	sortByStart(tasks)
	return tasks, nil
}

// GetRemindingTasks returns the assignee's tasks whose reminder has passed
// but which have not started yet. Recurring tasks are considered for
// occurrences in the next constants.RecurringReminderHorizonHours hours.
func (s *TaskService) GetRemindingTasks(assignee string, now time.Time) ([]models.Task, error) {
	repos := s.store.Repositories()

	tasks, err := repos.Tasks.FindReminding(assignee, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find reminding tasks: %w", err)
	}

	horizon := now.Add(constants.RecurringReminderHorizonHours * time.Hour)
	occurrences, err := s.recurringBetween(assignee, now, horizon)
	if err != nil {
		return nil, err
	}
	for _, occ := range occurrences {
		if occ.IsReminderDue(now) {
			tasks = append(tasks, occ)
		}
	}

	sortByStart(tasks)
	return tasks, nil
}

func (s *TaskService) recurringBetween(assignee string, start, end time.Time) ([]models.Task, error) {
	recurring, err := s.store.Repositories().Tasks.FindRecurringByAssignee(assignee)
	if err != nil {
		return nil, fmt.Errorf("failed to find recurring tasks: %w", err)
	}

	var out []models.Task
	for i := range recurring {
		occ, err := Occurrences(&recurring[i], start, end, s.limits)
		if err != nil {
			return nil, err
		}
		out = append(out, occ...)
	}
	return out, nil
}

func sortByStart(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].StartTime, tasks[j].StartTime
		switch {
		case a == nil || b == nil:
			return a != nil && b == nil
		case !a.Equal(*b):
			return a.Before(*b)
		default:
			return tasks[i].ID < tasks[j].ID
		}
	})
}
