package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/bujo-tasks/internal/hierarchy"
	"github.com/yukikurage/bujo-tasks/internal/models"
	"github.com/yukikurage/bujo-tasks/internal/repository"
)

var (
	ErrInvalidProjectName   = errors.New("project name cannot be empty")
	ErrUnknownProjectType   = errors.New("unknown project type")
	ErrInvitationNotFound   = errors.New("no pending invitation for this project")
	ErrAlreadyProjectMember = errors.New("user is already a member of this project")
	ErrCannotInviteYourself = errors.New("cannot invite yourself to the project")
)

// ProjectService provides business logic for projects and their groups.
type ProjectService struct {
	store repository.Store
	authz Authorizer
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store repository.Store, authz Authorizer) *ProjectService {
	return &ProjectService{
		store: store,
		authz: authz,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name  string
	Type  models.ProjectType
	Owner string
}

// CreateProject creates a project with an empty task hierarchy.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}
	if input.Type == "" {
		input.Type = models.ProjectTypeTodo
	}
	switch input.Type {
	case models.ProjectTypeTodo, models.ProjectTypeNote, models.ProjectTypeLedger:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProjectType, input.Type)
	}

	project := &models.Project{
		Name:  input.Name,
		Type:  input.Type,
		Owner: input.Owner,
	}

	err := s.store.Transaction(func(repos repository.Repositories) error {
		if err := repos.Projects.Create(project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		pt := &models.ProjectTasks{ProjectID: project.ID, Tasks: hierarchy.EmptyForest}
		if err := repos.ProjectTasks.Save(pt); err != nil {
			return fmt.Errorf("failed to create project tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject returns a project with its members.
func (s *ProjectService) GetProject(projectID uint64, requester string) (*models.Project, error) {
	return loadProject(s.store.Repositories(), projectID, requester)
}

// InviteMember adds username to the project's group as a pending member.
// Only the project owner can invite.
func (s *ProjectService) InviteMember(projectID uint64, requester, username string) error {
	username = strings.TrimSpace(username)
	if username == requester {
		return ErrCannotInviteYourself
	}

	return s.store.Transaction(func(repos repository.Repositories) error {
		project, err := loadProject(repos, projectID, requester)
		if err != nil {
			return err
		}
		if err := s.authz.CheckAuthorized(project.Owner, requester, ContentTypeProject, OperationUpdate, project.ID, project.Owner); err != nil {
			return err
		}
		for _, m := range project.Members {
			if m.Username == username {
				return ErrAlreadyProjectMember
			}
		}

		member := &models.ProjectMember{ProjectID: project.ID, Username: username}
		if err := repos.Projects.AddMember(member); err != nil {
			return fmt.Errorf("failed to add member to project: %w", err)
		}
		return nil
	})
}

// AcceptInvitation turns username's pending invitation into membership.
func (s *ProjectService) AcceptInvitation(projectID uint64, username string) (*models.Project, error) {
	var project *models.Project
	err := s.store.Transaction(func(repos repository.Repositories) error {
		var err error
		project, err = repos.Projects.FindByID(projectID)
		if err != nil {
			return ErrInvitationNotFound
		}

		for i, m := range project.Members {
			if m.Username != username {
				continue
			}
			if m.Accepted {
				return ErrAlreadyProjectMember
			}
			project.Members[i].Accepted = true
			if err := repos.Projects.AddMember(&project.Members[i]); err != nil {
				return fmt.Errorf("failed to accept invitation: %w", err)
			}
			return nil
		}
		return ErrInvitationNotFound
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}
