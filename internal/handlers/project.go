package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/bujo-tasks/internal/dto"
	apierrors "github.com/yukikurage/bujo-tasks/internal/errors"
	"github.com/yukikurage/bujo-tasks/internal/middleware"
	"github.com/yukikurage/bujo-tasks/internal/services"
)

// ProjectHandler serves project and project group endpoints.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a project owned by the requester.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	requester, ok := middleware.GetRequester(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:  req.Name,
		Type:  req.Type,
		Owner: requester,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// GetProject returns the project loaded by RequireProjectAccess.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(project))
}

// InviteMember invites a user to the project's group.
func (h *ProjectHandler) InviteMember(c *gin.Context) {
	requester, projectID, ok := requesterAndID(c)
	if !ok {
		return
	}

	var req dto.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projectService.InviteMember(projectID, requester, req.Username); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Invitation sent"})
}

// AcceptInvitation joins the requester to a project that invited them.
func (h *ProjectHandler) AcceptInvitation(c *gin.Context) {
	requester, projectID, ok := requesterAndID(c)
	if !ok {
		return
	}

	project, err := h.projectService.AcceptInvitation(projectID, requester)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}
