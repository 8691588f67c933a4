package service

import (
	"context"
	"strings"

	"github.com/workdayz/workdayz-api/internal/domain"
)

// In-memory repositories mirroring the semantics of the postgres
// implementations, including the quota and capacity guards.

type fakeUserRepo struct {
	users  map[string]*domain.User
	hashes map[string]string // keyed by email
	// when set, GetByEmail fails with this error to simulate a store outage
	getByEmailErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*domain.User),
		hashes: make(map[string]string),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User, passwordHash string) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	clone := *user
	r.users[user.UserID] = &clone
	r.hashes[user.Email] = passwordHash
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*domain.User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, string, error) {
	if r.getByEmailErr != nil {
		return nil, "", r.getByEmailErr
	}
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, r.hashes[email], nil
		}
	}
	return nil, "", domain.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, userID string, upd domain.UserUpdate) error {
	user, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if upd.FullName != "" {
		user.FullName = upd.FullName
	}
	if upd.Skills != "" {
		user.Skills = upd.Skills
	}
	if upd.JobTitle != "" {
		user.JobTitle = upd.JobTitle
	}
	if upd.Description != "" {
		user.Description = upd.Description
	}
	if upd.Img != "" {
		user.Img = upd.Img
	}
	return nil
}

func (r *fakeUserRepo) Search(_ context.Context, query string) ([]*domain.User, error) {
	results := []*domain.User{}
	for _, u := range r.users {
		haystack := strings.ToLower(u.FullName + " " + u.JobTitle + " " + u.Skills)
		if strings.Contains(haystack, strings.ToLower(query)) {
			clone := *u
			results = append(results, &clone)
		}
	}
	return results, nil
}

type fakeProjectRepo struct {
	projects map[string]*domain.Project
	members  map[string][]string // projectID -> member ids in insertion order
	order    []string            // projectIDs in creation order
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		projects: make(map[string]*domain.Project),
		members:  make(map[string][]string),
	}
}

func (r *fakeProjectRepo) isMember(projectID, userID string) bool {
	for _, id := range r.members[projectID] {
		if id == userID {
			return true
		}
	}
	return false
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	count, _ := r.CountActive(context.Background(), project.CreatorID)
	if count >= domain.MaxActiveProjects {
		return domain.ErrProjectQuota
	}
	clone := *project
	r.projects[project.ProjectID] = &clone
	r.members[project.ProjectID] = []string{}
	r.order = append(r.order, project.ProjectID)
	return nil
}

func (r *fakeProjectRepo) GetOpenByID(_ context.Context, projectID string) (*domain.Project, error) {
	project, ok := r.projects[projectID]
	if !ok || project.Closed {
		return nil, domain.ErrProjectNotFound
	}
	clone := *project
	return &clone, nil
}

func (r *fakeProjectRepo) CountActive(_ context.Context, userID string) (int, error) {
	count := 0
	for id, p := range r.projects {
		if !p.Closed && (p.CreatorID == userID || r.isMember(id, userID)) {
			count++
		}
	}
	return count, nil
}

func (r *fakeProjectRepo) IsUserInProject(_ context.Context, userID, projectID string, creatorOnly bool) (bool, error) {
	project, ok := r.projects[projectID]
	if !ok || project.Closed {
		return false, nil
	}
	if creatorOnly {
		return project.CreatorID == userID, nil
	}
	return project.CreatorID == userID || r.isMember(projectID, userID), nil
}

func (r *fakeProjectRepo) AddMember(_ context.Context, projectID, userID string) error {
	if _, ok := r.projects[projectID]; !ok {
		return domain.ErrProjectNotFound
	}
	if r.isMember(projectID, userID) {
		return nil
	}
	if len(r.members[projectID]) >= domain.MaxProjectMembers {
		return domain.ErrMemberLimit
	}
	r.members[projectID] = append(r.members[projectID], userID)
	return nil
}

func (r *fakeProjectRepo) RemoveMember(_ context.Context, projectID, userID string) error {
	filtered := r.members[projectID][:0]
	for _, id := range r.members[projectID] {
		if id != userID {
			filtered = append(filtered, id)
		}
	}
	r.members[projectID] = filtered
	return nil
}

func (r *fakeProjectRepo) Close(_ context.Context, projectID string, reason domain.CloseReason) error {
	project, ok := r.projects[projectID]
	if !ok || project.Closed {
		return domain.ErrProjectNotFound
	}
	project.Closed = true
	project.Reason = reason
	return nil
}

func (r *fakeProjectRepo) ActiveForUser(_ context.Context, userID string) ([]*domain.Project, error) {
	result := []*domain.Project{}
	for _, id := range r.order {
		p := r.projects[id]
		if !p.Closed && (p.CreatorID == userID || r.isMember(id, userID)) {
			clone := *p
			result = append(result, &clone)
		}
		if len(result) == domain.MaxActiveProjects {
			break
		}
	}
	return result, nil
}

func (r *fakeProjectRepo) PreviousForUser(_ context.Context, userID string, skip int) ([]*domain.Project, error) {
	matched := []*domain.Project{}
	for _, id := range r.order {
		p := r.projects[id]
		if p.Closed && (p.CreatorID == userID || r.isMember(id, userID)) {
			clone := *p
			matched = append(matched, &clone)
		}
	}
	if skip >= len(matched) {
		return []*domain.Project{}, nil
	}
	matched = matched[skip:]
	if len(matched) > domain.PreviousProjectsPageSize {
		matched = matched[:domain.PreviousProjectsPageSize]
	}
	return matched, nil
}

func (r *fakeProjectRepo) Members(_ context.Context, projectID string) (*domain.ProjectMembers, error) {
	project, ok := r.projects[projectID]
	if !ok || project.Closed {
		return nil, domain.ErrProjectNotFound
	}
	result := &domain.ProjectMembers{
		ProjectID: projectID,
		Creator:   domain.UserProfile{UserID: project.CreatorID},
		Members:   []domain.UserProfile{},
	}
	for _, id := range r.members[projectID] {
		result.Members = append(result.Members, domain.UserProfile{UserID: id})
	}
	return result, nil
}

type fakePhaseRepo struct {
	phases []*domain.Phase
	tasks  *fakeTaskRepo // for cascade on Delete; may be nil
}

func newFakePhaseRepo() *fakePhaseRepo {
	return &fakePhaseRepo{}
}

func (r *fakePhaseRepo) Create(_ context.Context, phase *domain.Phase) error {
	count := 0
	for _, p := range r.phases {
		if p.ProjectID == phase.ProjectID {
			count++
		}
	}
	if count >= domain.MaxPhasesPerProject {
		return domain.ErrPhaseLimit
	}
	clone := *phase
	r.phases = append(r.phases, &clone)
	return nil
}

func (r *fakePhaseRepo) UpdateStatus(_ context.Context, projectID, phaseID string, status domain.Status) error {
	for _, p := range r.phases {
		if p.PhaseID == phaseID && p.ProjectID == projectID {
			p.Status = status
			return nil
		}
	}
	return domain.ErrPhaseNotFound
}

func (r *fakePhaseRepo) Delete(_ context.Context, projectID, phaseID string) error {
	for i, p := range r.phases {
		if p.PhaseID == phaseID && p.ProjectID == projectID {
			r.phases = append(r.phases[:i], r.phases[i+1:]...)
			if r.tasks != nil {
				r.tasks.deleteByPhase(phaseID)
			}
			return nil
		}
	}
	return domain.ErrPhaseNotFound
}

func (r *fakePhaseRepo) ListForProject(_ context.Context, projectID string) ([]*domain.Phase, error) {
	result := []*domain.Phase{}
	for _, p := range r.phases {
		if p.ProjectID == projectID {
			clone := *p
			result = append(result, &clone)
		}
		if len(result) == domain.MaxPhasesPerProject {
			break
		}
	}
	return result, nil
}

type fakeTaskRepo struct {
	tasks []*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{}
}

func (r *fakeTaskRepo) deleteByPhase(phaseID string) {
	filtered := r.tasks[:0]
	for _, t := range r.tasks {
		if t.PhaseID != phaseID {
			filtered = append(filtered, t)
		}
	}
	r.tasks = filtered
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	clone := *task
	r.tasks = append(r.tasks, &clone)
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, taskID string) (*domain.Task, error) {
	for _, t := range r.tasks {
		if t.TaskID == taskID {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, taskID string, status domain.Status) error {
	for _, t := range r.tasks {
		if t.TaskID == taskID {
			t.Status = status
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *fakeTaskRepo) Reassign(_ context.Context, taskID, assigneeID string) error {
	for _, t := range r.tasks {
		if t.TaskID == taskID {
			t.AssignedTo = assigneeID
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *fakeTaskRepo) Delete(_ context.Context, taskID string) error {
	for i, t := range r.tasks {
		if t.TaskID == taskID {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *fakeTaskRepo) ListInPhase(_ context.Context, phaseID string, skip int) ([]*domain.Task, error) {
	return r.list(phaseID, "", skip, domain.TasksPageSize), nil
}

func (r *fakeTaskRepo) ListByAssigneeInPhase(_ context.Context, userID, phaseID string, skip int) ([]*domain.Task, error) {
	return r.list(phaseID, userID, skip, domain.MyTasksPageSize), nil
}

func (r *fakeTaskRepo) list(phaseID, assignee string, skip, limit int) []*domain.Task {
	matched := []*domain.Task{}
	for _, t := range r.tasks {
		if t.PhaseID == phaseID && (assignee == "" || t.AssignedTo == assignee) {
			clone := *t
			matched = append(matched, &clone)
		}
	}
	if skip >= len(matched) {
		return []*domain.Task{}
	}
	matched = matched[skip:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}
