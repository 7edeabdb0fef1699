package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/bujo-tasks/internal/errors"
	"github.com/yukikurage/bujo-tasks/internal/models"
	"github.com/yukikurage/bujo-tasks/internal/services"
)

// RequireProjectAccess checks that the requester owns the project or is an
// accepted member of its group
func RequireProjectAccess(projectService *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		requester, exists := GetRequester(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		project, err := projectService.GetProject(projectID, requester)
		if err != nil {
			// Return 404 instead of 403 to avoid leaking project existence
			if errors.Is(err, services.ErrUnauthorized) {
				err = services.ErrProjectNotFound
			}
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		c.Set("project", *project)
		c.Next()
	}
}

// RequireProjectOwner checks that the requester owns the project loaded by
// RequireProjectAccess
func RequireProjectOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		project, ok := GetProject(c)
		if !ok {
			apierrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		requester, _ := GetRequester(c)
		if project.Owner != requester {
			apierrors.Forbidden(c, "Only the project owner can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetProject retrieves the project stored by RequireProjectAccess
func GetProject(c *gin.Context) (models.Project, bool) {
	v, exists := c.Get("project")
	if !exists {
		return models.Project{}, false
	}
	project, ok := v.(models.Project)
	return project, ok
}
