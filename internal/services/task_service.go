package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yukikurage/bujo-tasks/internal/hierarchy"
	"github.com/yukikurage/bujo-tasks/internal/logger"
	"github.com/yukikurage/bujo-tasks/internal/models"
	"github.com/yukikurage/bujo-tasks/internal/recurrence"
	"github.com/yukikurage/bujo-tasks/internal/repository"
	"github.com/yukikurage/bujo-tasks/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrCompletedTaskNotFound = errors.New("completed task not found")
	ErrProjectNotFound       = errors.New("project not found")
	ErrProjectTasksNotFound  = errors.New("project task hierarchy not found")
	ErrNameRequired          = errors.New("name is required")
	ErrNameEmpty             = errors.New("name cannot be empty")
	ErrInvalidProjectType    = errors.New("project type does not accept tasks")
	ErrProjectTypeMismatch   = errors.New("cannot move task to a project of a different type")
	ErrUnknownTaskInOrder    = errors.New("task order references a task outside the project")
	ErrInvalidDuration       = errors.New("duration cannot be negative")
)

// TaskService handles task business logic
type TaskService struct {
	store  repository.Store
	authz  Authorizer
	limits recurrence.Limits
}

// NewTaskService creates a new TaskService
func NewTaskService(store repository.Store, authz Authorizer) *TaskService {
	return &TaskService{
		store:  store,
		authz:  authz,
		limits: recurrence.DefaultLimits,
	}
}

// SetLimits overrides the bounds applied when expanding recurring tasks
func (s *TaskService) SetLimits(limits recurrence.Limits) {
	s.limits = limits
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name           string
	AssignedTo     string
	DueDate        *string
	DueTime        *string
	Duration       int
	Timezone       string
	RecurrenceRule *string
	// ReminderSetting nil means the owner's default reminder
	ReminderSetting *models.ReminderSetting
}

// UpdateTaskInput represents a partial update. Nil fields are left untouched;
// the Clear flags reset a field to empty.
type UpdateTaskInput struct {
	Name                *string
	AssignedTo          *string
	DueDate             *string
	ClearDueDate        bool
	DueTime             *string
	ClearDueTime        bool
	Timezone            *string
	Duration            *int
	RecurrenceRule      *string
	ClearRecurrenceRule bool
	ReminderSetting     *models.ReminderSetting
}

// TaskNode is a task with its ordered sub tasks
type TaskNode struct {
	models.Task
	SubTasks []*TaskNode `json:"sub_tasks"`
}

// GetTasks returns the project's tasks nested in hierarchy order. Tree nodes
// without a task row are dropped and their children take their place.
func (s *TaskService) GetTasks(projectID uint64, requester string) ([]*TaskNode, error) {
	repos := s.store.Repositories()

	if _, err := loadProject(repos, projectID, requester); err != nil {
		return nil, err
	}

	pt, err := repos.ProjectTasks.FindByProjectID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []*TaskNode{}, nil
		}
		return nil, fmt.Errorf("failed to find project tasks: %w", err)
	}

	tasks, err := repos.Tasks.FindByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	byID := make(map[uint64]models.Task, len(tasks))
	known := hierarchy.NewIDSet()
	for _, t := range tasks {
		byID[t.ID] = t
		known[t.ID] = struct{}{}
	}

	nodes, err := hierarchy.Reconcile(known, pt.Tasks)
	if err != nil {
		var malformed *hierarchy.MalformedHierarchyError
		if !errors.As(err, &malformed) {
			return nil, err
		}
		logger.L().Warn().
			Err(err).
			Uint64("project_id", projectID).
			Msg("task hierarchy is corrupt, serving flat order")
		nodes = flatNodes(tasks)
	}

	return buildTaskNodes(nodes, byID), nil
}

// flatNodes orders tasks as one sibling sequence by ID
func flatNodes(tasks []models.Task) []*hierarchy.Node {
	nodes := make([]*hierarchy.Node, len(tasks))
	for i, t := range tasks {
		nodes[i] = &hierarchy.Node{ID: t.ID}
	}
	return nodes
}

func buildTaskNodes(nodes []*hierarchy.Node, byID map[uint64]models.Task) []*TaskNode {
	out := make([]*TaskNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &TaskNode{
			Task:     byID[n.ID],
			SubTasks: buildTaskNodes(n.Children, byID),
		})
	}
	return out
}

// GetTask returns a task the requester can see
func (s *TaskService) GetTask(requester string, taskID uint64) (*models.Task, error) {
	task, _, err := loadTask(s.store.Repositories(), taskID, requester)
	return task, err
}

// GetCompletedTask returns a completed task the requester can see
func (s *TaskService) GetCompletedTask(requester string, taskID uint64) (*models.CompletedTask, error) {
	task, _, err := loadCompletedTask(s.store.Repositories(), taskID, requester)
	return task, err
}

// GetCompletedTasks lists a project's completed tasks, most recently updated first
func (s *TaskService) GetCompletedTasks(projectID uint64, requester string, params utils.PaginationParams) ([]models.CompletedTask, int64, error) {
	repos := s.store.Repositories()
	if _, err := loadProject(repos, projectID, requester); err != nil {
		return nil, 0, err
	}

	tasks, total, err := repos.CompletedTasks.FindByProject(projectID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list completed tasks: %w", err)
	}
	return tasks, total, nil
}

// Create creates a task as the last root of the project's hierarchy
func (s *TaskService) Create(projectID uint64, owner string, input CreateTaskInput) (*models.Task, error) {
	var task *models.Task
	err := s.store.Transaction(func(repos repository.Repositories) error {
		project, err := loadProject(repos, projectID, owner)
		if err != nil {
			return err
		}
		if err := s.authz.CheckAuthorized(owner, owner, ContentTypeTask, OperationUpdate, project.ID, project.Owner); err != nil {
			return err
		}
		task, err = createTask(repos, project, owner, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func createTask(repos repository.Repositories, project *models.Project, owner string, input CreateTaskInput) (*models.Task, error) {
	if project.Type != models.ProjectTypeTodo {
		return nil, fmt.Errorf("%w: project %d is %s", ErrInvalidProjectType, project.ID, project.Type)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Duration < 0 {
		return nil, ErrInvalidDuration
	}

	task := &models.Task{TaskFields: models.TaskFields{
		ProjectID:      project.ID,
		Owner:          owner,
		AssignedTo:     input.AssignedTo,
		Name:           input.Name,
		DueDate:        nonEmpty(input.DueDate),
		DueTime:        nonEmpty(input.DueTime),
		Timezone:       input.Timezone,
		Duration:       input.Duration,
		RecurrenceRule: nonEmpty(input.RecurrenceRule),
	}}
	if task.AssignedTo == "" {
		task.AssignedTo = owner
	}

	if input.ReminderSetting != nil {
		task.ReminderSetting = input.ReminderSetting.Clone()
	} else {
		setting, err := defaultReminder(repos, owner)
		if err != nil {
			return nil, err
		}
		task.ReminderSetting = setting
	}

	if err := validateSchedule(&task.TaskFields); err != nil {
		return nil, err
	}

	if err := repos.Tasks.Save(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	pt, err := lockProjectTasks(repos, project.ID, true)
	if err != nil {
		return nil, err
	}
	if pt.Tasks, err = hierarchy.InsertRoot(pt.Tasks, task.ID); err != nil {
		return nil, inconsistent(err)
	}
	if err := repos.ProjectTasks.Save(pt); err != nil {
		return nil, fmt.Errorf("failed to save project tasks: %w", err)
	}

	return task, nil
}

// PartialUpdate applies the fields present in input and returns the
// notifications produced by an assignee change
func (s *TaskService) PartialUpdate(requester string, taskID uint64, input UpdateTaskInput) (*models.Task, []Event, error) {
	var (
		task   *models.Task
		events []Event
	)
	err := s.store.Transaction(func(repos repository.Repositories) error {
		var (
			project *models.Project
			err     error
		)
		task, project, err = loadTask(repos, taskID, requester)
		if err != nil {
			return err
		}
		if err := s.authz.CheckAuthorized(task.Owner, requester, ContentTypeTask, OperationUpdate, project.ID, project.Owner); err != nil {
			return err
		}

		if input.Name != nil {
			if strings.TrimSpace(*input.Name) == "" {
				return ErrNameEmpty
			}
			task.Name = *input.Name
		}

		if input.AssignedTo != nil && *input.AssignedTo != task.AssignedTo {
			oldAssignee := task.AssignedTo
			task.AssignedTo = *input.AssignedTo
			if task.AssignedTo != requester {
				events = append(events, Event{Recipient: task.AssignedTo, TaskID: task.ID, TaskName: task.Name})
			}
			if oldAssignee != requester && oldAssignee != "" {
				events = append(events, Event{Recipient: oldAssignee, TaskID: task.ID, TaskName: task.Name})
			}
		}

		applySchedule(&task.TaskFields, input)

		switch {
		case input.ClearDueDate && !task.IsRecurring():
			// without a due date a relative reminder has nothing to count from
			task.ReminderSetting = models.NoReminder()
		case input.ReminderSetting != nil:
			task.ReminderSetting = input.ReminderSetting.Clone()
		}

		if err := validateSchedule(&task.TaskFields); err != nil {
			return err
		}
		if err := repos.Tasks.Save(task); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return task, events, nil
}

func applySchedule(f *models.TaskFields, input UpdateTaskInput) {
	if input.ClearDueDate {
		f.DueDate = nil
	} else if input.DueDate != nil {
		f.DueDate = nonEmpty(input.DueDate)
	}
	if input.ClearDueTime {
		f.DueTime = nil
	} else if input.DueTime != nil {
		f.DueTime = nonEmpty(input.DueTime)
	}
	if input.Timezone != nil {
		f.Timezone = *input.Timezone
	}
	if input.Duration != nil {
		f.Duration = *input.Duration
	}
	if input.ClearRecurrenceRule {
		f.RecurrenceRule = nil
	} else if input.RecurrenceRule != nil {
		f.RecurrenceRule = nonEmpty(input.RecurrenceRule)
	}
}

// validateSchedule checks the rule and recomputes the derived instants
func validateSchedule(f *models.TaskFields) error {
	if f.Duration < 0 {
		return ErrInvalidDuration
	}
	if f.IsRecurring() {
		if _, err := taskRule(f); err != nil {
			return err
		}
	}
	return f.Reschedule()
}

// Complete moves the task and its whole subtree to the completed set
func (s *TaskService) Complete(requester string, taskID uint64) (*models.CompletedTask, error) {
	var completed *models.CompletedTask
	err := s.store.Transaction(func(repos repository.Repositories) error {
		task, project, err := loadTask(repos, taskID, requester)
		if err != nil {
			return err
		}
		if err := s.authz.CheckAuthorized(task.Owner, requester, ContentTypeTask, OperationUpdate, project.ID, project.Owner); err != nil {
			return err
		}

		members, err := detachSubtree(repos, task)
		if err != nil {
			return err
		}
		for i := range members {
			c := models.NewCompletedTask(&members[i])
			if c.ID == task.ID {
				completed = c
			}
			if err := repos.CompletedTasks.Save(c); err != nil {
				return fmt.Errorf("failed to save completed task: %w", err)
			}
		}
		if err := repos.Tasks.DeleteAll(members); err != nil {
			return fmt.Errorf("failed to delete completed tasks: %w", err)
		}
		if completed == nil {
			return ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

// Uncomplete re-creates a completed task as a new root task and returns its
// new ID. The task gets the owner's default reminder.
func (s *TaskService) Uncomplete(requester string, completedTaskID uint64) (uint64, error) {
	var id uint64
	err := s.store.Transaction(func(repos repository.Repositories) error {
		completed, project, err := loadCompletedTask(repos, completedTaskID, requester)
		if err != nil {
			return err
		}
		if err := s.authz.CheckAuthorized(completed.Owner, requester, ContentTypeTask, OperationUpdate, project.ID, project.Owner); err != nil {
			return err
		}

		if err := repos.CompletedTasks.Delete(completed); err != nil {
			return fmt.Errorf("failed to delete completed task: %w", err)
		}

		task, err := createTask(repos, project, completed.Owner, CreateTaskInput{
			Name:           completed.Name,
			AssignedTo:     completed.AssignedTo,
			DueDate:        completed.DueDate,
			DueTime:        completed.DueTime,
			Duration:       completed.Duration,
			Timezone:       completed.Timezone,
			RecurrenceRule: completed.RecurrenceRule,
		})
		if err != nil {
			return err
		}
		id = task.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes the task and its subtree and returns the notifications for
// the project's other collaborators
func (s *TaskService) Delete(requester string, taskID uint64) ([]Event, error) {
	var events []Event
	err := s.store.Transaction(func(repos repository.Repositories) error {
		task, project, err := loadTask(repos, taskID, requester)
		if err != nil {
			return err
		}
		if err := s.authz.CheckAuthorized(task.Owner, requester, ContentTypeTask, OperationDelete, project.ID, project.Owner); err != nil {
			return err
		}

		members, err := detachSubtree(repos, task)
		if err != nil {
			return err
		}
		if err := repos.Tasks.DeleteAll(members); err != nil {
			return fmt.Errorf("failed to delete tasks: %w", err)
		}

		events = taskEvents(project, requester, task.ID, task.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteCompleted removes a completed task
func (s *TaskService) DeleteCompleted(requester string, completedTaskID uint64) ([]Event, error) {
	var events []Event
	err := s.store.Transaction(func(repos repository.Repositories) error {
		task, project, err := loadCompletedTask(repos, completedTaskID, requester)
		if err != nil {
			return err
		}
		if err := s.authz.CheckAuthorized(task.Owner, requester, ContentTypeTask, OperationDelete, project.ID, project.Owner); err != nil {
			return err
		}
		if err := repos.CompletedTasks.Delete(task); err != nil {
			return fmt.Errorf("failed to delete completed task: %w", err)
		}
		events = taskEvents(project, requester, task.ID, task.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Move transfers the task and its subtree to the end of the target project's
// hierarchy. Moving within the same project makes the task the last root.
func (s *TaskService) Move(requester string, taskID, targetProjectID uint64) error {
	return s.store.Transaction(func(repos repository.Repositories) error {
		target, err := loadProject(repos, targetProjectID, requester)
		if err != nil {
			return err
		}
		task, source, err := loadTask(repos, taskID, requester)
		if err != nil {
			return err
		}
		if source.Type != target.Type {
			return fmt.Errorf("%w: %s to %s", ErrProjectTypeMismatch, source.Type, target.Type)
		}
		if err := s.authz.CheckAuthorized(task.Owner, requester, ContentTypeTask, OperationUpdate, target.ID, target.Owner); err != nil {
			return err
		}

		if source.ID == target.ID {
			return moveWithinProject(repos, task)
		}
		return moveAcrossProjects(repos, task, target.ID)
	})
}

func moveWithinProject(repos repository.Repositories, task *models.Task) error {
	pt, err := lockProjectTasks(repos, task.ProjectID, false)
	if err != nil {
		return err
	}
	result, err := hierarchy.Detach(pt.Tasks, task.ID, hierarchy.Delete())
	if err != nil {
		return err
	}
	if pt.Tasks, err = hierarchy.AppendSubtree(result.Source, result.Removed); err != nil {
		return inconsistent(err)
	}
	if err := repos.ProjectTasks.Save(pt); err != nil {
		return fmt.Errorf("failed to save project tasks: %w", err)
	}
	return nil
}

func moveAcrossProjects(repos repository.Repositories, task *models.Task, targetProjectID uint64) error {
	// lock in ascending project order so two opposite moves cannot deadlock
	var src, dst *models.ProjectTasks
	var err error
	if task.ProjectID < targetProjectID {
		if src, err = lockProjectTasks(repos, task.ProjectID, false); err != nil {
			return err
		}
		if dst, err = lockProjectTasks(repos, targetProjectID, true); err != nil {
			return err
		}
	} else {
		if dst, err = lockProjectTasks(repos, targetProjectID, true); err != nil {
			return err
		}
		if src, err = lockProjectTasks(repos, task.ProjectID, false); err != nil {
			return err
		}
	}

	result, err := hierarchy.Detach(src.Tasks, task.ID, hierarchy.Transfer(dst.Tasks))
	if err != nil {
		return inconsistent(err)
	}

	members, err := repos.Tasks.FindAllByID(result.AffectedIDs)
	if err != nil {
		return fmt.Errorf("failed to find subtree tasks: %w", err)
	}
	for i := range members {
		members[i].ProjectID = targetProjectID
		if err := repos.Tasks.Save(&members[i]); err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}
	}

	src.Tasks, dst.Tasks = result.Source, result.Target
	if err := repos.ProjectTasks.Save(src); err != nil {
		return fmt.Errorf("failed to save project tasks: %w", err)
	}
	if err := repos.ProjectTasks.Save(dst); err != nil {
		return fmt.Errorf("failed to save project tasks: %w", err)
	}
	return nil
}

// UpdateTaskOrder replaces the project's hierarchy with a caller-supplied
// nested order. Every node must name a task of the project. Tasks the order
// leaves out are kept as trailing roots in ID order.
func (s *TaskService) UpdateTaskOrder(projectID uint64, requester string, order []*hierarchy.Node) error {
	return s.store.Transaction(func(repos repository.Repositories) error {
		project, err := loadProject(repos, projectID, requester)
		if err != nil {
			return err
		}
		// the order is shared by every member; any of them may rewrite it
		if err := s.authz.CheckAuthorized(requester, requester, ContentTypeProject, OperationUpdate, project.ID, project.Owner); err != nil {
			return err
		}

		tasks, err := repos.Tasks.FindByProject(projectID)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		known := hierarchy.NewIDSet()
		for _, t := range tasks {
			known[t.ID] = struct{}{}
		}

		listed := hierarchy.NewIDSet()
		for _, id := range hierarchy.NodeIDs(order) {
			if id != 0 && !known.Has(id) {
				return fmt.Errorf("%w: %d", ErrUnknownTaskInOrder, id)
			}
			listed[id] = struct{}{}
		}

		full := append([]*hierarchy.Node(nil), order...)
		var omitted []uint64
		for _, t := range tasks {
			if !listed.Has(t.ID) {
				full = append(full, &hierarchy.Node{ID: t.ID})
				omitted = append(omitted, t.ID)
			}
		}

		serialized, err := hierarchy.FromTree(full)
		if err != nil {
			return err
		}
		if len(omitted) > 0 {
			logger.L().Warn().
				Uint64("project_id", projectID).
				Uints64("omitted", omitted).
				Msg("task order left out tasks, appending them as roots")
		}

		pt, err := lockProjectTasks(repos, projectID, true)
		if err != nil {
			return err
		}
		pt.Tasks = serialized
		if err := repos.ProjectTasks.Save(pt); err != nil {
			return fmt.Errorf("failed to save project tasks: %w", err)
		}
		return nil
	})
}

// inconsistent reports an identifier collision on a write path as a corrupt
// hierarchy: the stored tree and the task rows disagree.
func inconsistent(err error) error {
	var malformed *hierarchy.MalformedHierarchyError
	if errors.As(err, &malformed) {
		return err
	}
	if errors.Is(err, hierarchy.ErrDuplicateID) || errors.Is(err, hierarchy.ErrInvalidID) {
		return &hierarchy.MalformedHierarchyError{Cause: err}
	}
	return err
}

// detachSubtree removes the task's subtree from its project's hierarchy and
// returns the subtree's task rows. Rows the hierarchy references but which
// no longer exist are skipped.
func detachSubtree(repos repository.Repositories, task *models.Task) ([]models.Task, error) {
	pt, err := lockProjectTasks(repos, task.ProjectID, false)
	if err != nil {
		return nil, err
	}

	result, err := hierarchy.Detach(pt.Tasks, task.ID, hierarchy.Delete())
	if err != nil {
		return nil, err
	}

	members, err := repos.Tasks.FindAllByID(result.AffectedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find subtree tasks: %w", err)
	}

	pt.Tasks = result.Source
	if err := repos.ProjectTasks.Save(pt); err != nil {
		return nil, fmt.Errorf("failed to save project tasks: %w", err)
	}
	return members, nil
}

// lockProjectTasks reads the project's hierarchy row for update. A missing
// row is an error unless create is set, in which case an empty one is returned.
func lockProjectTasks(repos repository.Repositories, projectID uint64, create bool) (*models.ProjectTasks, error) {
	pt, err := repos.ProjectTasks.FindByProjectIDForUpdate(projectID)
	if err == nil {
		return pt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find project tasks: %w", err)
	}
	if !create {
		return nil, fmt.Errorf("%w: project %d", ErrProjectTasksNotFound, projectID)
	}
	return &models.ProjectTasks{ProjectID: projectID, Tasks: hierarchy.EmptyForest}, nil
}

func loadProject(repos repository.Repositories, projectID uint64, requester string) (*models.Project, error) {
	project, err := repos.Projects.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if !project.HasAccess(requester) {
		return nil, &AuthorizationError{
			Requester:   requester,
			ContentType: ContentTypeProject,
			Operation:   OperationRead,
			ProjectID:   project.ID,
		}
	}
	return project, nil
}

func loadTask(repos repository.Repositories, taskID uint64, requester string) (*models.Task, *models.Project, error) {
	task, err := repos.Tasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to find task: %w", err)
	}
	project, err := loadProject(repos, task.ProjectID, requester)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

func loadCompletedTask(repos repository.Repositories, taskID uint64, requester string) (*models.CompletedTask, *models.Project, error) {
	task, err := repos.CompletedTasks.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCompletedTaskNotFound
		}
		return nil, nil, fmt.Errorf("failed to find completed task: %w", err)
	}
	project, err := loadProject(repos, task.ProjectID, requester)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

// defaultReminder reminds the owner their configured offset before the
// start. Owners without a user record get no reminder.
func defaultReminder(repos repository.Repositories, owner string) (models.ReminderSetting, error) {
	offset, err := repos.Users.GetDefaultReminderOffset(owner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NoReminder(), nil
		}
		return models.ReminderSetting{}, fmt.Errorf("failed to find default reminder: %w", err)
	}
	return models.RemindBefore(int(offset / time.Minute)), nil
}

func taskEvents(project *models.Project, requester string, taskID uint64, taskName string) []Event {
	var members []string
	for _, m := range project.Members {
		if m.Accepted {
			members = append(members, m.Username)
		}
	}
	names := recipients(project.Owner, members, requester)
	sort.Strings(names)

	events := make([]Event, 0, len(names))
	for _, name := range names {
		events = append(events, Event{Recipient: name, TaskID: taskID, TaskName: taskName})
	}
	return events
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
