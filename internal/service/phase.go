package service

import (
	"context"
	"fmt"

	"github.com/workdayz/workdayz-api/internal/domain"
	"github.com/workdayz/workdayz-api/internal/repository"
)

// PhaseService handles business logic for project phases.
// All permission checks are delegated to the AccessChecker; every phase
// mutation is creator-only.
type PhaseService struct {
	phaseRepo repository.PhaseRepository
	access    *AccessChecker
}

// NewPhaseService creates a new PhaseService
func NewPhaseService(phaseRepo repository.PhaseRepository, access *AccessChecker) *PhaseService {
	return &PhaseService{
		phaseRepo: phaseRepo,
		access:    access,
	}
}

// Create adds a phase to an open project; creator only, at most
// MaxPhasesPerProject phases. New phases start as "not completed".
func (s *PhaseService) Create(ctx context.Context, actorID, projectID, name string) (*domain.Phase, error) {
	if err := s.access.Require(ctx, actorID, projectID, RoleCreator); err != nil {
		return nil, err
	}

	phase := &domain.Phase{
		PhaseID:   domain.NewID(),
		ProjectID: projectID,
		Name:      name,
		Status:    domain.StatusNotCompleted,
	}

	if err := s.phaseRepo.Create(ctx, phase); err != nil {
		return nil, fmt.Errorf("creating phase: %w", err)
	}

	return phase, nil
}

// UpdateStatus sets a phase's status; creator only. There is no transition
// graph: any status is reachable from any status.
func (s *PhaseService) UpdateStatus(ctx context.Context, actorID, projectID, phaseID string, status domain.Status) error {
	if !status.IsValid() {
		return domain.ErrInvalidStatus
	}

	if err := s.access.Require(ctx, actorID, projectID, RoleCreator); err != nil {
		return err
	}

	if err := s.phaseRepo.UpdateStatus(ctx, projectID, phaseID, status); err != nil {
		return fmt.Errorf("updating phase status: %w", err)
	}

	return nil
}

// Delete removes a phase and all of its tasks; creator only
func (s *PhaseService) Delete(ctx context.Context, actorID, projectID, phaseID string) error {
	if err := s.access.Require(ctx, actorID, projectID, RoleCreator); err != nil {
		return err
	}

	if err := s.phaseRepo.Delete(ctx, projectID, phaseID); err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}

	return nil
}

// Progress computes the share of completed phases. A project with zero
// phases has progress 0; NaN never reaches the wire.
func (s *PhaseService) Progress(ctx context.Context, projectID string) (*domain.Progress, error) {
	phases, err := s.phaseRepo.ListForProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("calculating progress: %w", err)
	}

	progress := &domain.Progress{
		ProjectID: projectID,
		Total:     len(phases),
	}

	for _, phase := range phases {
		if phase.Status == domain.StatusCompleted {
			progress.Completed++
		}
	}

	if progress.Total > 0 {
		progress.Progress = float64(progress.Completed) / float64(progress.Total)
	}

	return progress, nil
}

// ListForProject returns the project's phases
func (s *PhaseService) ListForProject(ctx context.Context, projectID string) ([]*domain.Phase, error) {
	return s.phaseRepo.ListForProject(ctx, projectID)
}
