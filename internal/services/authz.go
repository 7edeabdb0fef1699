package services

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("user is not authorized to perform this action")

// ContentType names the kind of project content an operation targets
type ContentType string

const (
	ContentTypeTask    ContentType = "TASK"
	ContentTypeProject ContentType = "PROJECT"
)

// Operation names what the requester is trying to do
type Operation string

const (
	OperationRead   Operation = "READ"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// AuthorizationError reports a rejected operation. It matches ErrUnauthorized.
type AuthorizationError struct {
	Requester   string
	ContentType ContentType
	Operation   Operation
	ProjectID   uint64
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("user %s is not authorized to %s %s in project %d",
		e.Requester, e.Operation, e.ContentType, e.ProjectID)
}

func (e *AuthorizationError) Is(target error) bool {
	return target == ErrUnauthorized
}

// Authorizer decides whether requester may operate on content owned by owner
type Authorizer interface {
	CheckAuthorized(owner, requester string, contentType ContentType, operation Operation, projectID uint64, projectOwner string) error
}

// AuthorizationService lets the content owner and the project owner modify content
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// CheckAuthorized returns an *AuthorizationError unless requester owns the
// content or the project
func (s *AuthorizationService) CheckAuthorized(owner, requester string, contentType ContentType, operation Operation, projectID uint64, projectOwner string) error {
	if requester != "" && (requester == owner || requester == projectOwner) {
		return nil
	}
	return &AuthorizationError{
		Requester:   requester,
		ContentType: contentType,
		Operation:   operation,
		ProjectID:   projectID,
	}
}
