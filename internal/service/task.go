package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/workdayz/workdayz-api/internal/domain"
	"github.com/workdayz/workdayz-api/internal/repository"
)

// TaskService handles business logic for tasks. Permission checks are
// delegated to the AccessChecker; status updates additionally allow the
// task's assignee.
type TaskService struct {
	taskRepo repository.TaskRepository
	access   *AccessChecker
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, access *AccessChecker) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		access:   access,
	}
}

// Create adds a task to a phase. The actor must be a member or the creator
// of the project; the assignee must also be one, unless the actor assigns
// the task to themself. New tasks start as "not completed".
func (s *TaskService) Create(ctx context.Context, actorID, projectID, phaseID, assigneeID, name, description string) (*domain.Task, error) {
	if err := s.access.Require(ctx, actorID, projectID, RoleMember); err != nil {
		return nil, err
	}

	if assigneeID != actorID {
		ok, err := s.access.IsUserInProject(ctx, assigneeID, projectID, false)
		if err != nil {
			return nil, fmt.Errorf("checking assignee membership: %w", err)
		}
		if !ok {
			return nil, domain.ErrAssigneeNotMember
		}
	}

	task := &domain.Task{
		TaskID:      domain.NewID(),
		PhaseID:     phaseID,
		Name:        name,
		Description: description,
		AssignedTo:  assigneeID,
		Status:      domain.StatusNotCompleted,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	return task, nil
}

// UpdateStatus sets a task's status. Allowed for the assignee, or for the
// project creator as a fallback; any status is reachable from any status.
func (s *TaskService) UpdateStatus(ctx context.Context, actorID, projectID, taskID string, status domain.Status) error {
	if !status.IsValid() {
		return domain.ErrInvalidStatus
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}

	if !task.IsAssignee(actorID) {
		if err := s.access.Require(ctx, actorID, projectID, RoleCreator); err != nil {
			if errors.Is(err, domain.ErrNotProjectCreator) {
				return domain.ErrNotTaskAssignee
			}
			return err
		}
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, status); err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}

	return nil
}

// Reassign moves a task to a new assignee; creator only. The new assignee
// must be a project member unless it is the creator themself.
func (s *TaskService) Reassign(ctx context.Context, actorID, projectID, taskID, newAssigneeID string) error {
	if err := s.access.Require(ctx, actorID, projectID, RoleCreator); err != nil {
		return err
	}

	if newAssigneeID != actorID {
		ok, err := s.access.IsUserInProject(ctx, newAssigneeID, projectID, false)
		if err != nil {
			return fmt.Errorf("checking assignee membership: %w", err)
		}
		if !ok {
			return domain.ErrAssigneeNotMember
		}
	}

	if err := s.taskRepo.Reassign(ctx, taskID, newAssigneeID); err != nil {
		return fmt.Errorf("reassigning task: %w", err)
	}

	return nil
}

// Delete removes a task; creator only
func (s *TaskService) Delete(ctx context.Context, actorID, projectID, taskID string) error {
	if err := s.access.Require(ctx, actorID, projectID, RoleCreator); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	return nil
}

// ListInPhase returns a page of all tasks in a phase.
// A page shorter than TasksPageSize signals the end of the list.
func (s *TaskService) ListInPhase(ctx context.Context, phaseID string, skip int) ([]*domain.Task, error) {
	return s.taskRepo.ListInPhase(ctx, phaseID, skip)
}

// ListMine returns a page of the user's tasks in a phase
func (s *TaskService) ListMine(ctx context.Context, userID, phaseID string, skip int) ([]*domain.Task, error) {
	return s.taskRepo.ListByAssigneeInPhase(ctx, userID, phaseID, skip)
}
