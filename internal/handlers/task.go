package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/yukikurage/bujo-tasks/internal/dto"
	apierrors "github.com/yukikurage/bujo-tasks/internal/errors"
	"github.com/yukikurage/bujo-tasks/internal/hierarchy"
	"github.com/yukikurage/bujo-tasks/internal/middleware"
	"github.com/yukikurage/bujo-tasks/internal/models"
	"github.com/yukikurage/bujo-tasks/internal/services"
	"github.com/yukikurage/bujo-tasks/internal/utils"
)

// Notification kinds
const (
	EventTaskAssigned = "task_assigned"
	EventTaskDeleted  = "task_deleted"
)

type TaskHandler struct {
	taskService *services.TaskService
	notifier    services.Notifier
}

func NewTaskHandler(taskService *services.TaskService, notifier services.Notifier) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		notifier:    notifier,
	}
}

// GetTasks returns the project's tasks as a tree
func (h *TaskHandler) GetTasks(c *gin.Context) {
	requester, projectID, ok := requesterAndID(c)
	if !ok {
		return
	}

	nodes, err := h.taskService.GetTasks(projectID, requester)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskNodeDTOs(nodes))
}

// GetTask returns a specific task by ID
// Task is already loaded by RequireTaskAccess middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a new task at the end of the project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	requester, projectID, ok := requesterAndID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		Name:           req.Name,
		AssignedTo:     req.AssignedTo,
		DueDate:        req.DueDate,
		DueTime:        req.DueTime,
		Duration:       req.Duration,
		Timezone:       req.Timezone,
		RecurrenceRule: req.RecurrenceRule,
	}
	if req.ReminderSetting != nil {
		setting := req.ReminderSetting.ToModel()
		input.ReminderSetting = &setting
	}

	task, err := h.taskService.Create(projectID, requester, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. Only the fields present in the body
// change; null clears a field.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	requester, taskID, ok := requesterAndID(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	input, err := ParseUpdateTask(body)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, events, err := h.taskService.PartialUpdate(requester, taskID, input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	h.notifier.Notify(c.Request.Context(), EventTaskAssigned, events)

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ParseUpdateTask decodes a PATCH body into an update that distinguishes
// absent fields from fields set to null
func ParseUpdateTask(body []byte) (services.UpdateTaskInput, error) {
	var input services.UpdateTaskInput

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return input, fmt.Errorf("invalid request body")
	}

	for key, raw := range fields {
		isNull := string(raw) == "null"
		var err error
		switch key {
		case "name":
			input.Name, err = decodeRequired[string](key, raw, isNull)
		case "assigned_to":
			input.AssignedTo, err = decodeRequired[string](key, raw, isNull)
		case "timezone":
			input.Timezone, err = decodeRequired[string](key, raw, isNull)
		case "duration":
			input.Duration, err = decodeRequired[int](key, raw, isNull)
			if err == nil && *input.Duration < 0 {
				err = fmt.Errorf("duration cannot be negative")
			}
		case "due_date":
			input.ClearDueDate = isNull
			if !isNull {
				input.DueDate, err = decodeRequired[string](key, raw, false)
			}
		case "due_time":
			input.ClearDueTime = isNull
			if !isNull {
				input.DueTime, err = decodeRequired[string](key, raw, false)
			}
		case "recurrence_rule":
			input.ClearRecurrenceRule = isNull
			if !isNull {
				input.RecurrenceRule, err = decodeRequired[string](key, raw, false)
			}
		case "reminder_setting":
			setting := models.NoReminder()
			if !isNull {
				var r *dto.ReminderSettingDTO
				if r, err = decodeRequired[dto.ReminderSettingDTO](key, raw, false); err == nil {
					setting = r.ToModel()
				}
			}
			input.ReminderSetting = &setting
		}
		if err != nil {
			return services.UpdateTaskInput{}, err
		}
	}
	return input, nil
}

func decodeRequired[T any](key string, raw json.RawMessage, isNull bool) (*T, error) {
	if isNull {
		return nil, fmt.Errorf("%s cannot be null", key)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &v, nil
}

// CompleteTask moves a task and its sub tasks to the completed list
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	requester, taskID, ok := requesterAndID(c)
	if !ok {
		return
	}

	completed, err := h.taskService.Complete(requester, taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompletedTaskDTO(*completed))
}

// DeleteTask deletes a task and its sub tasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	requester, taskID, ok := requesterAndID(c)
	if !ok {
		return
	}

	events, err := h.taskService.Delete(requester, taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	h.notifier.Notify(c.Request.Context(), EventTaskDeleted, events)

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"events":  dto.ToEventDTOs(events),
	})
}

// MoveTask moves a task and its sub tasks to another project
func (h *TaskHandler) MoveTask(c *gin.Context) {
	requester, taskID, ok := requesterAndID(c)
	if !ok {
		return
	}

	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.Move(requester, taskID, req.TargetProjectID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task moved successfully"})
}

// UpdateTaskOrder replaces the project's task tree
func (h *TaskHandler) UpdateTaskOrder(c *gin.Context) {
	requester, projectID, ok := requesterAndID(c)
	if !ok {
		return
	}

	var order []*hierarchy.Node
	if err := c.ShouldBindJSON(&order); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.taskService.UpdateTaskOrder(projectID, requester, order); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task order updated successfully"})
}

// GetCompletedTasks lists the project's completed tasks
func (h *TaskHandler) GetCompletedTasks(c *gin.Context) {
	requester, projectID, ok := requesterAndID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	tasks, total, err := h.taskService.GetCompletedTasks(projectID, requester, params)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompletedTaskListResponse(tasks, params, total))
}

// GetCompletedTask returns a completed task
func (h *TaskHandler) GetCompletedTask(c *gin.Context) {
	requester, taskID, ok := requesterAndID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetCompletedTask(requester, taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompletedTaskDTO(*task))
}

// UncompleteTask restores a completed task as a new task
func (h *TaskHandler) UncompleteTask(c *gin.Context) {
	requester, taskID, ok := requesterAndID(c)
	if !ok {
		return
	}

	id, err := h.taskService.Uncomplete(requester, taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DeleteCompletedTask deletes a completed task
func (h *TaskHandler) DeleteCompletedTask(c *gin.Context) {
	requester, taskID, ok := requesterAndID(c)
	if !ok {
		return
	}

	events, err := h.taskService.DeleteCompleted(requester, taskID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	h.notifier.Notify(c.Request.Context(), EventTaskDeleted, events)

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"events":  dto.ToEventDTOs(events),
	})
}

// GetTasksBetween lists the requester's assigned tasks and recurring
// occurrences starting in [start, end). Both bounds are RFC 3339.
func (h *TaskHandler) GetTasksBetween(c *gin.Context) {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid start, expected RFC 3339")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid end, expected RFC 3339")
		return
	}

	tasks, err := h.taskService.GetTasksBetween(requester, start, end)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetRemindingTasks lists the requester's tasks whose reminder is due. The
// optional now parameter (RFC 3339) defaults to the current time.
func (h *TaskHandler) GetRemindingTasks(c *gin.Context) {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	now := time.Now()
	if raw := c.Query("now"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid now, expected RFC 3339")
			return
		}
		now = parsed
	}

	tasks, err := h.taskService.GetRemindingTasks(requester, now)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// requesterAndID reads the requester and the :id path parameter, writing the
// error response itself when either is missing
func requesterAndID(c *gin.Context) (string, uint64, bool) {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return "", 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return "", 0, false
	}
	return requester, id, true
}
