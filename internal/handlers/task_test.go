package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/bujo-tasks/internal/constants"
	"github.com/yukikurage/bujo-tasks/internal/dto"
	apierrors "github.com/yukikurage/bujo-tasks/internal/errors"
	"github.com/yukikurage/bujo-tasks/internal/testutil"
)

func (suite *HandlerTestSuite) tasksURL() string {
	return fmt.Sprintf("/api/projects/%d/tasks", suite.project.ID)
}

func (suite *HandlerTestSuite) createTask(user string, body gin.H) dto.TaskDTO {
	w := suite.request(http.MethodPost, suite.tasksURL(), user, body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var task dto.TaskDTO
	suite.decode(w, &task)
	return task
}

func (suite *HandlerTestSuite) TestCreateTask_Success() {
	task := suite.createTask("alice", gin.H{
		"name":             "dentist",
		"due_date":         "2024-03-01",
		"due_time":         "10:00",
		"duration":         30,
		"timezone":         "Europe/Paris",
		"reminder_setting": gin.H{"before": 15},
	})

	assert.Equal(suite.T(), "dentist", task.Name)
	assert.Equal(suite.T(), "alice", task.Owner)
	assert.Equal(suite.T(), "alice", task.AssignedTo)
	require.NotNil(suite.T(), task.StartTime)
	assert.Equal(suite.T(), "2024-03-01T09:00:00Z", task.StartTime.UTC().Format("2006-01-02T15:04:05Z07:00"))
	require.NotNil(suite.T(), task.ReminderDateTime)
	assert.Equal(suite.T(), "2024-03-01T08:45:00Z", task.ReminderDateTime.UTC().Format("2006-01-02T15:04:05Z07:00"))
}

func (suite *HandlerTestSuite) TestCreateTask_Validation() {
	w := suite.request(http.MethodPost, suite.tasksURL(), "alice", gin.H{"due_date": "2024-03-01"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, suite.tasksURL(), "alice", gin.H{"name": "x", "recurrence_rule": "FREQ=NEVER"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	assert.Equal(suite.T(), apierrors.ErrCodeInvalidRule, apiErr.Code)

	w = suite.request(http.MethodPost, suite.tasksURL(), "mallory", gin.H{"name": "x"})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPost, suite.tasksURL(), "", gin.H{"name": "x"})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestGetTasks_ReturnsTree() {
	parent := suite.createTask("alice", gin.H{"name": "parent"})
	child := suite.createTask("bob", gin.H{"name": "child"})

	order := []gin.H{{"id": parent.ID, "children": []gin.H{{"id": child.ID}}}}
	w := suite.request(http.MethodPut, suite.tasksURL()+"/order", "alice", order)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodGet, suite.tasksURL(), "bob", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var nodes []dto.TaskNodeDTO
	suite.decode(w, &nodes)
	suite.Require().Len(nodes, 1)
	assert.Equal(suite.T(), "parent", nodes[0].Name)
	suite.Require().Len(nodes[0].SubTasks, 1)
	assert.Equal(suite.T(), "child", nodes[0].SubTasks[0].Name)
}

func (suite *HandlerTestSuite) TestUpdateTaskOrder_UnknownTask() {
	task := suite.createTask("alice", gin.H{"name": "a"})

	w := suite.request(http.MethodPut, suite.tasksURL()+"/order", "alice", []gin.H{{"id": task.ID}, {"id": 999}})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	assert.Equal(suite.T(), apierrors.ErrCodeInvalidOrder, apiErr.Code)
}

func (suite *HandlerTestSuite) TestGetTask_HiddenFromNonMembers() {
	task := suite.createTask("alice", gin.H{"name": "secret"})
	url := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := suite.request(http.MethodGet, url, "mallory", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, url, "bob", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/tasks/abc", "bob", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTask_PartialAndNotifies() {
	task := suite.createTask("alice", gin.H{
		"name":     "report",
		"due_date": "2024-03-01",
		"timezone": "UTC",
	})
	url := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := suite.request(http.MethodPatch, url, "alice", gin.H{"due_date": nil, "assigned_to": "bob"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated dto.TaskDTO
	suite.decode(w, &updated)
	assert.Equal(suite.T(), "report", updated.Name)
	assert.Nil(suite.T(), updated.DueDate)
	assert.Nil(suite.T(), updated.StartTime)
	assert.Equal(suite.T(), "bob", updated.AssignedTo)

	suite.Require().Len(suite.notifier.sent, 1)
	assert.Equal(suite.T(), EventTaskAssigned, suite.notifier.sent[0].kind)
	assert.Equal(suite.T(), "bob", suite.notifier.sent[0].events[0].Recipient)

	w = suite.request(http.MethodPatch, url, "alice", gin.H{"name": nil})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPatch, url, "bob", gin.H{"name": "mine now"})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTask_NotifiesCollaborators() {
	task := suite.createTask("bob", gin.H{"name": "party"})

	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), "bob", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Events []dto.EventDTO `json:"events"`
	}
	suite.decode(w, &body)
	assert.Equal(suite.T(), []dto.EventDTO{{Recipient: "alice", TaskID: task.ID, TaskName: "party"}}, body.Events)

	suite.Require().Len(suite.notifier.sent, 1)
	assert.Equal(suite.T(), EventTaskDeleted, suite.notifier.sent[0].kind)
}

func (suite *HandlerTestSuite) TestDeleteTask_CorruptHierarchy() {
	task := suite.createTask("alice", gin.H{"name": "a"})
	testutil.SetForest(suite.T(), suite.db, suite.project.ID, `[{"id":`)

	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), "alice", nil)
	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	assert.Equal(suite.T(), apierrors.ErrCodeCorruptHierarchy, apiErr.Code)
}

func (suite *HandlerTestSuite) TestCompleteAndUncomplete() {
	task := suite.createTask("alice", gin.H{"name": "laundry"})

	w := suite.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/complete", task.ID), "alice", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodGet, fmt.Sprintf("/api/projects/%d/completed-tasks?page=1&limit=10", suite.project.ID), "bob", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.CompletedTaskListResponse
	suite.decode(w, &list)
	assert.Equal(suite.T(), int64(1), list.Pagination.Total)
	assert.Equal(suite.T(), 10, list.Pagination.Limit)
	assert.False(suite.T(), list.Pagination.HasMore)
	suite.Require().Len(list.Tasks, 1)
	assert.Equal(suite.T(), task.ID, list.Tasks[0].ID)

	w = suite.request(http.MethodPost, fmt.Sprintf("/api/completed-tasks/%d/uncomplete", task.ID), "alice", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var restored struct {
		ID uint64 `json:"id"`
	}
	suite.decode(w, &restored)
	assert.NotZero(suite.T(), restored.ID)
	assert.NotEqual(suite.T(), task.ID, restored.ID)

	w = suite.request(http.MethodGet, fmt.Sprintf("/api/completed-tasks/%d", task.ID), "alice", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestMoveTask_TypeMismatch() {
	task := suite.createTask("alice", gin.H{"name": "a"})
	note := testutil.CreateProject(suite.T(), suite.db, "Notes", "NOTE", "alice")

	w := suite.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/move", task.ID), "alice", gin.H{"target_project_id": note.ID})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, fmt.Sprintf("/api/tasks/%d/move", task.ID), "alice", gin.H{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetTasksBetween() {
	suite.createTask("alice", gin.H{
		"name":            "standup",
		"timezone":        "UTC",
		"recurrence_rule": "DTSTART:20240101T090000Z\nRRULE:FREQ=DAILY",
	})

	w := suite.request(http.MethodGet, "/api/me/tasks?start=2024-01-02T00:00:00Z&end=2024-01-03T00:00:00Z", "alice", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var tasks []dto.TaskDTO
	suite.decode(w, &tasks)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "2024-01-02", *tasks[0].DueDate)
	assert.Equal(suite.T(), "09:00", *tasks[0].DueTime)

	w = suite.request(http.MethodGet, "/api/me/tasks?start=yesterday&end=2024-01-03T00:00:00Z", "alice", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetRemindingTasks() {
	suite.createTask("alice", gin.H{
		"name":             "dentist",
		"due_date":         "2024-01-01",
		"due_time":         "10:00",
		"timezone":         "UTC",
		"reminder_setting": gin.H{"before": 30},
	})

	w := suite.request(http.MethodGet, "/api/me/reminders?now=2024-01-01T09:45:00Z", "alice", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var tasks []dto.TaskDTO
	suite.decode(w, &tasks)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "dentist", tasks[0].Name)

	w = suite.request(http.MethodGet, "/api/me/reminders?now=soon", "alice", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// Handlers can also be called directly with the requester set on the context
func TestGetTasksBetween_WithoutRequester(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/me/tasks", nil)

	NewTaskHandler(nil, nil).GetTasksBetween(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetTasksBetween_InvalidEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/me/tasks?start=2024-01-02T00:00:00Z&end=tomorrow", nil)
	c.Set(constants.ContextKeyRequester, "alice")

	NewTaskHandler(nil, nil).GetTasksBetween(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseUpdateTask(t *testing.T) {
	input, err := ParseUpdateTask([]byte(`{
		"name": "renamed",
		"due_date": null,
		"due_time": "08:30",
		"recurrence_rule": null,
		"reminder_setting": {"before": 5},
		"unknown": 1
	}`))
	require.NoError(t, err)

	assert.Equal(t, "renamed", *input.Name)
	assert.True(t, input.ClearDueDate)
	assert.Nil(t, input.DueDate)
	assert.False(t, input.ClearDueTime)
	assert.Equal(t, "08:30", *input.DueTime)
	assert.True(t, input.ClearRecurrenceRule)
	assert.Nil(t, input.AssignedTo)
	assert.Nil(t, input.Duration)
	require.NotNil(t, input.ReminderSetting)
	assert.Equal(t, 5, *input.ReminderSetting.Before)
}

func TestParseUpdateTask_NullReminderMeansNone(t *testing.T) {
	input, err := ParseUpdateTask([]byte(`{"reminder_setting": null}`))
	require.NoError(t, err)
	require.NotNil(t, input.ReminderSetting)
	assert.True(t, input.ReminderSetting.IsNone())
}

func TestParseUpdateTask_Rejections(t *testing.T) {
	for _, body := range []string{
		`not json`,
		`{"name": null}`,
		`{"assigned_to": 3}`,
		`{"duration": -1}`,
		`{"reminder_setting": "soon"}`,
	} {
		_, err := ParseUpdateTask([]byte(body))
		assert.Error(t, err, body)
	}
}
