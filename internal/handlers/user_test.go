package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/bujo-tasks/internal/dto"
	"github.com/yukikurage/bujo-tasks/internal/middleware"
)

func (suite *HandlerTestSuite) TestSession_RemembersForwardedUser() {
	w := suite.request(http.MethodGet, "/api/me", "alice", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	// later requests carry only the session cookie
	req, _ := http.NewRequest(http.MethodGet, "/api/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = suite.serve(req)
	suite.Require().Equal(http.StatusOK, w.Code)

	var user dto.UserDTO
	suite.decode(w, &user)
	assert.Equal(suite.T(), "alice", user.Username)
	assert.Equal(suite.T(), "UTC", user.Timezone)

	// the session wins over a different forwarded identity
	req, _ = http.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(middleware.ForwardedUserHeader, "mallory")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = suite.serve(req)
	suite.decode(w, &user)
	assert.Equal(suite.T(), "alice", user.Username)
}

func (suite *HandlerTestSuite) TestUpdateSettings() {
	w := suite.request(http.MethodPatch, "/api/me/settings", "alice", gin.H{"reminder_before_task": 20})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var user dto.UserDTO
	suite.decode(w, &user)
	assert.Equal(suite.T(), 20, user.ReminderBeforeTask)

	// new tasks pick up the default reminder
	task := suite.createTask("alice", gin.H{"name": "x"})
	suite.Require().NotNil(task.ReminderSetting.Before)
	assert.Equal(suite.T(), 20, *task.ReminderSetting.Before)

	w = suite.request(http.MethodPatch, "/api/me/settings", "alice", gin.H{"timezone": "Nowhere/Land"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestLogout() {
	w := suite.request(http.MethodPost, "/api/me/logout", "alice", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestProjectLifecycle() {
	w := suite.request(http.MethodPost, "/api/projects", "carol", gin.H{"name": "Trip"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var project dto.ProjectDTO
	suite.decode(w, &project)
	assert.Equal(suite.T(), "TODO", string(project.Type))

	base := fmt.Sprintf("/api/projects/%d", project.ID)

	w = suite.request(http.MethodGet, base, "dave", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request(http.MethodPost, base+"/members", "carol", gin.H{"username": "dave"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.request(http.MethodPost, base+"/accept", "dave", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodGet, base, "dave", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	// members cannot invite
	w = suite.request(http.MethodPost, base+"/members", "dave", gin.H{"username": "erin"})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPost, base+"/accept", "dave", nil)
	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}
