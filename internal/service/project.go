package service

import (
	"context"
	"fmt"

	"github.com/workdayz/workdayz-api/internal/domain"
	"github.com/workdayz/workdayz-api/internal/repository"
)

// ProjectService handles business logic for projects and membership.
// It is the single source of truth for "is user U allowed to act on
// project P" and for the active-project quota.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	access      *AccessChecker
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, access *AccessChecker) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		access:      access,
	}
}

// Create creates a project for the owner. Fails with ErrProjectQuota when the
// owner already participates in MaxActiveProjects open projects; the count
// and the insert run in one statement, so the limit cannot be raced past by
// two concurrent creates observing the same count. Name and description are
// validated by the HTTP boundary, not here.
func (s *ProjectService) Create(ctx context.Context, ownerID, name, description string) (*domain.Project, error) {
	project := &domain.Project{
		ProjectID:   domain.NewID(),
		CreatorID:   ownerID,
		Name:        name,
		Description: description,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return project, nil
}

// AddMember adds a user to an open project. The actor must be the creator or
// a member; the target must be under the active-project quota and the project
// under the member cap. Adding an existing member (or the creator) is a no-op.
func (s *ProjectService) AddMember(ctx context.Context, actorID, targetID, projectID string) error {
	if err := s.access.Require(ctx, actorID, projectID, RoleMember); err != nil {
		return err
	}

	count, err := s.projectRepo.CountActive(ctx, targetID)
	if err != nil {
		return fmt.Errorf("counting target's active projects: %w", err)
	}
	if count >= domain.MaxActiveProjects {
		return domain.ErrProjectQuota
	}

	// Set semantics: re-adding a member, or adding the creator, changes nothing
	already, err := s.projectRepo.IsUserInProject(ctx, targetID, projectID, false)
	if err != nil {
		return fmt.Errorf("checking target membership: %w", err)
	}
	if already {
		return nil
	}

	if err := s.projectRepo.AddMember(ctx, projectID, targetID); err != nil {
		return fmt.Errorf("adding member: %w", err)
	}

	return nil
}

// RemoveMember removes a user from a project; creator only.
// Removing a non-member is a no-op.
func (s *ProjectService) RemoveMember(ctx context.Context, actorID, targetID, projectID string) error {
	if err := s.access.Require(ctx, actorID, projectID, RoleCreator); err != nil {
		return err
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, targetID); err != nil {
		return fmt.Errorf("removing member: %w", err)
	}

	return nil
}

// Close permanently closes a project; creator only, one-way transition.
// The reason must be "completed" or "cancelled".
func (s *ProjectService) Close(ctx context.Context, actorID, projectID string, reason domain.CloseReason) error {
	if !reason.IsValid() {
		return domain.ErrInvalidCloseReason
	}

	project, err := s.projectRepo.GetOpenByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("closing project: %w", err)
	}

	if !project.IsCreator(actorID) {
		return domain.ErrNotProjectCreator
	}

	if err := s.projectRepo.Close(ctx, projectID, reason); err != nil {
		return fmt.Errorf("closing project: %w", err)
	}

	return nil
}

// CountActive counts open projects where the user is creator or member
func (s *ProjectService) CountActive(ctx context.Context, userID string) (int, error) {
	return s.projectRepo.CountActive(ctx, userID)
}

// IsUserInProject reports the user's relationship to an open project.
// Absent and closed projects both read as "not in project".
func (s *ProjectService) IsUserInProject(ctx context.Context, userID, projectID string, creatorOnly bool) (bool, error) {
	return s.projectRepo.IsUserInProject(ctx, userID, projectID, creatorOnly)
}

// ActiveForUser returns the user's open projects (creator or member)
func (s *ProjectService) ActiveForUser(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.projectRepo.ActiveForUser(ctx, userID)
}

// PreviousForUser returns a page of the user's closed projects
func (s *ProjectService) PreviousForUser(ctx context.Context, userID string, skip int) ([]*domain.Project, error) {
	return s.projectRepo.PreviousForUser(ctx, userID, skip)
}

// Members returns the creator and members of an open project
func (s *ProjectService) Members(ctx context.Context, projectID string) (*domain.ProjectMembers, error) {
	return s.projectRepo.Members(ctx, projectID)
}

// Details returns a single open project
func (s *ProjectService) Details(ctx context.Context, projectID string) (*domain.Project, error) {
	return s.projectRepo.GetOpenByID(ctx, projectID)
}
