package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workdayz/workdayz-api/internal/domain"
)

type phaseFixture struct {
	projects *fakeProjectRepo
	phases   *fakePhaseRepo
	tasks    *fakeTaskRepo
	svc      *PhaseService
	creator  string
	member   string
	project  *domain.Project
}

func newPhaseFixture(t *testing.T) *phaseFixture {
	t.Helper()
	ctx := context.Background()

	projects := newFakeProjectRepo()
	phases := newFakePhaseRepo()
	tasks := newFakeTaskRepo()
	phases.tasks = tasks
	access := NewAccessChecker(projects)

	f := &phaseFixture{
		projects: projects,
		phases:   phases,
		tasks:    tasks,
		svc:      NewPhaseService(phases, access),
		creator:  domain.NewID(),
		member:   domain.NewID(),
	}

	var err error
	f.project, err = NewProjectService(projects, access).Create(ctx, f.creator, "fixture", "")
	require.NoError(t, err)
	require.NoError(t, projects.AddMember(ctx, f.project.ProjectID, f.member))
	return f
}

func TestPhaseService_Create(t *testing.T) {
	ctx := context.Background()
	f := newPhaseFixture(t)

	t.Run("member cannot create", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.member, f.project.ProjectID, "design")
		assert.ErrorIs(t, err, domain.ErrNotProjectCreator)
	})

	t.Run("creator creates with default status", func(t *testing.T) {
		phase, err := f.svc.Create(ctx, f.creator, f.project.ProjectID, "design")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusNotCompleted, phase.Status)
		assert.True(t, domain.IsValidID(phase.PhaseID))
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.creator, domain.NewID(), "design")
		assert.ErrorIs(t, err, domain.ErrNotProjectCreator)
	})
}

func TestPhaseService_CreateLimit(t *testing.T) {
	ctx := context.Background()
	f := newPhaseFixture(t)

	for i := 1; i < domain.MaxPhasesPerProject; i++ {
		_, err := f.svc.Create(ctx, f.creator, f.project.ProjectID, fmt.Sprintf("phase-%d", i))
		require.NoError(t, err)
	}

	// 20-я фаза проходит, 21-я отклоняется
	_, err := f.svc.Create(ctx, f.creator, f.project.ProjectID, "last")
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.creator, f.project.ProjectID, "overflow")
	assert.ErrorIs(t, err, domain.ErrPhaseLimit)
}

func TestPhaseService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newPhaseFixture(t)

	phase, err := f.svc.Create(ctx, f.creator, f.project.ProjectID, "build")
	require.NoError(t, err)

	t.Run("invalid status", func(t *testing.T) {
		err := f.svc.UpdateStatus(ctx, f.creator, f.project.ProjectID, phase.PhaseID, "done")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("member cannot update", func(t *testing.T) {
		err := f.svc.UpdateStatus(ctx, f.member, f.project.ProjectID, phase.PhaseID, domain.StatusCompleted)
		assert.ErrorIs(t, err, domain.ErrNotProjectCreator)
	})

	t.Run("any status reachable from any status", func(t *testing.T) {
		// Графа переходов нет: завершенную фазу можно вернуть назад
		transitions := []domain.Status{
			domain.StatusInProgress,
			domain.StatusCompleted,
			domain.StatusIssue,
			domain.StatusNotCompleted,
			domain.StatusCompleted,
		}
		for _, status := range transitions {
			require.NoError(t, f.svc.UpdateStatus(ctx, f.creator, f.project.ProjectID, phase.PhaseID, status))
		}

		phases, err := f.svc.ListForProject(ctx, f.project.ProjectID)
		require.NoError(t, err)
		require.Len(t, phases, 1)
		assert.Equal(t, domain.StatusCompleted, phases[0].Status)
	})

	t.Run("unknown phase", func(t *testing.T) {
		err := f.svc.UpdateStatus(ctx, f.creator, f.project.ProjectID, domain.NewID(), domain.StatusCompleted)
		assert.ErrorIs(t, err, domain.ErrPhaseNotFound)
	})
}

func TestPhaseService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newPhaseFixture(t)

	phase, err := f.svc.Create(ctx, f.creator, f.project.ProjectID, "doomed")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.tasks.Create(ctx, &domain.Task{
			TaskID:     domain.NewID(),
			PhaseID:    phase.PhaseID,
			Name:       fmt.Sprintf("task-%d", i),
			AssignedTo: f.member,
			Status:     domain.StatusNotCompleted,
		}))
	}

	t.Run("member cannot delete", func(t *testing.T) {
		err := f.svc.Delete(ctx, f.member, f.project.ProjectID, phase.PhaseID)
		assert.ErrorIs(t, err, domain.ErrNotProjectCreator)
	})

	t.Run("delete cascades to tasks", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(ctx, f.creator, f.project.ProjectID, phase.PhaseID))

		phases, err := f.svc.ListForProject(ctx, f.project.ProjectID)
		require.NoError(t, err)
		assert.Empty(t, phases)

		// Задачи удаленной фазы не остаются сиротами
		tasks, err := f.tasks.ListInPhase(ctx, phase.PhaseID, 0)
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("double delete", func(t *testing.T) {
		err := f.svc.Delete(ctx, f.creator, f.project.ProjectID, phase.PhaseID)
		assert.ErrorIs(t, err, domain.ErrPhaseNotFound)
	})
}

func TestPhaseService_Progress(t *testing.T) {
	ctx := context.Background()
	f := newPhaseFixture(t)

	t.Run("zero phases is zero progress", func(t *testing.T) {
		progress, err := f.svc.Progress(ctx, f.project.ProjectID)
		require.NoError(t, err)
		assert.Equal(t, 0, progress.Total)
		assert.Equal(t, 0, progress.Completed)
		assert.Equal(t, 0.0, progress.Progress)
	})

	phases := make([]*domain.Phase, 4)
	for i := range phases {
		phase, err := f.svc.Create(ctx, f.creator, f.project.ProjectID, fmt.Sprintf("phase-%d", i))
		require.NoError(t, err)
		phases[i] = phase
	}

	t.Run("no completed phases", func(t *testing.T) {
		progress, err := f.svc.Progress(ctx, f.project.ProjectID)
		require.NoError(t, err)
		assert.Equal(t, 4, progress.Total)
		assert.Equal(t, 0.0, progress.Progress)
	})

	t.Run("partial completion", func(t *testing.T) {
		require.NoError(t, f.svc.UpdateStatus(ctx, f.creator, f.project.ProjectID, phases[0].PhaseID, domain.StatusCompleted))
		require.NoError(t, f.svc.UpdateStatus(ctx, f.creator, f.project.ProjectID, phases[1].PhaseID, domain.StatusIssue))

		progress, err := f.svc.Progress(ctx, f.project.ProjectID)
		require.NoError(t, err)
		assert.Equal(t, 1, progress.Completed)
		assert.InDelta(t, 0.25, progress.Progress, 1e-9)
	})

	t.Run("full completion", func(t *testing.T) {
		for _, phase := range phases {
			require.NoError(t, f.svc.UpdateStatus(ctx, f.creator, f.project.ProjectID, phase.PhaseID, domain.StatusCompleted))
		}

		progress, err := f.svc.Progress(ctx, f.project.ProjectID)
		require.NoError(t, err)
		assert.Equal(t, 1.0, progress.Progress)
	})
}
