package service

import (
	"context"
	"fmt"

	"github.com/workdayz/workdayz-api/internal/domain"
	"github.com/workdayz/workdayz-api/internal/repository"
)

// Role is the relationship a caller must hold to a project
type Role int

// Roles checked by Require
const (
	// RoleMember allows the project creator and any member
	RoleMember Role = iota
	// RoleCreator allows the project creator only
	RoleCreator
)

// AccessChecker is the single place permission predicates are evaluated.
// Phase and Task operations delegate here instead of re-implementing the
// creator/member checks per call site.
type AccessChecker struct {
	projectRepo repository.ProjectRepository
}

// NewAccessChecker creates a new AccessChecker
func NewAccessChecker(projectRepo repository.ProjectRepository) *AccessChecker {
	return &AccessChecker{projectRepo: projectRepo}
}

// Require returns nil if the actor holds the role on an open project.
// An absent or closed project yields the same Forbidden error as a missing
// membership: callers cannot tell the two apart.
func (c *AccessChecker) Require(ctx context.Context, actorID, projectID string, role Role) error {
	ok, err := c.projectRepo.IsUserInProject(ctx, actorID, projectID, role == RoleCreator)
	if err != nil {
		return fmt.Errorf("checking project access: %w", err)
	}

	if !ok {
		if role == RoleCreator {
			return domain.ErrNotProjectCreator
		}
		return domain.ErrNotProjectMember
	}

	return nil
}

// IsUserInProject reports whether the user relates to an open project,
// as creator only or as creator-or-member
func (c *AccessChecker) IsUserInProject(ctx context.Context, userID, projectID string, creatorOnly bool) (bool, error) {
	return c.projectRepo.IsUserInProject(ctx, userID, projectID, creatorOnly)
}
