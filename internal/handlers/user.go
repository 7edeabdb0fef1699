package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/bujo-tasks/internal/dto"
	apierrors "github.com/yukikurage/bujo-tasks/internal/errors"
	"github.com/yukikurage/bujo-tasks/internal/middleware"
	"github.com/yukikurage/bujo-tasks/internal/services"
)

// UserHandler serves the requester's own profile and session.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetCurrentUser returns the requester's profile, creating it on first use.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.userService.GetOrCreate(requester)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateSettings changes the requester's timezone and default reminder.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateSettings(requester, services.UserSettings{
		Timezone:           req.Timezone,
		ReminderBeforeTask: req.ReminderBeforeTask,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the session.
func (h *UserHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
