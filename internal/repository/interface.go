package repository

import (
	"context"

	"github.com/workdayz/workdayz-api/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create создает нового пользователя с хешированным паролем
	Create(ctx context.Context, user *domain.User, passwordHash string) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetByEmail получает пользователя и хеш пароля по email
	GetByEmail(ctx context.Context, email string) (*domain.User, string, error)

	// Update обновляет изменяемые поля профиля
	Update(ctx context.Context, userID string, upd domain.UserUpdate) error

	// Search ищет пользователей по имени, должности и навыкам
	Search(ctx context.Context, query string) ([]*domain.User, error)
}

// ProjectRepository определяет методы для работы с данными проектов и участников
type ProjectRepository interface {
	// Create создает проект если у создателя меньше domain.MaxActiveProjects
	// активных проектов; иначе возвращает domain.ErrProjectQuota
	Create(ctx context.Context, project *domain.Project) error

	// GetOpenByID получает открытый проект по ID
	GetOpenByID(ctx context.Context, projectID string) (*domain.Project, error)

	// CountActive возвращает число открытых проектов где пользователь
	// является создателем или участником
	CountActive(ctx context.Context, userID string) (int, error)

	// IsUserInProject проверяет отношение пользователя к открытому проекту:
	// при creatorOnly — только создатель, иначе создатель или участник.
	// Для закрытого или несуществующего проекта возвращает false без ошибки.
	IsUserInProject(ctx context.Context, userID, projectID string, creatorOnly bool) (bool, error)

	// AddMember добавляет участника если в проекте меньше
	// domain.MaxProjectMembers участников; повторное добавление — no-op
	AddMember(ctx context.Context, projectID, userID string) error

	// RemoveMember удаляет участника; удаление не-участника — no-op
	RemoveMember(ctx context.Context, projectID, userID string) error

	// Close помечает открытый проект закрытым с указанной причиной
	Close(ctx context.Context, projectID string, reason domain.CloseReason) error

	// ActiveForUser возвращает открытые проекты пользователя (создатель или участник)
	ActiveForUser(ctx context.Context, userID string) ([]*domain.Project, error)

	// PreviousForUser возвращает страницу закрытых проектов пользователя
	PreviousForUser(ctx context.Context, userID string, skip int) ([]*domain.Project, error)

	// Members возвращает создателя и участников открытого проекта
	Members(ctx context.Context, projectID string) (*domain.ProjectMembers, error)
}

// PhaseRepository определяет методы для работы с данными фаз
type PhaseRepository interface {
	// Create создает фазу если в проекте меньше domain.MaxPhasesPerProject фаз;
	// иначе возвращает domain.ErrPhaseLimit
	Create(ctx context.Context, phase *domain.Phase) error

	// UpdateStatus обновляет статус фазы
	UpdateStatus(ctx context.Context, projectID, phaseID string, status domain.Status) error

	// Delete удаляет фазу вместе с ее задачами
	Delete(ctx context.Context, projectID, phaseID string) error

	// ListForProject возвращает фазы проекта (не более domain.MaxPhasesPerProject)
	ListForProject(ctx context.Context, projectID string) ([]*domain.Phase, error)
}

// TaskRepository определяет методы для работы с данными задач
type TaskRepository interface {
	// Create создает новую задачу
	Create(ctx context.Context, task *domain.Task) error

	// GetByID получает задачу по ID
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)

	// UpdateStatus обновляет статус задачи
	UpdateStatus(ctx context.Context, taskID string, status domain.Status) error

	// Reassign назначает задачу на другого пользователя
	Reassign(ctx context.Context, taskID, assigneeID string) error

	// Delete удаляет задачу
	Delete(ctx context.Context, taskID string) error

	// ListInPhase возвращает страницу задач фазы (domain.TasksPageSize)
	ListInPhase(ctx context.Context, phaseID string, skip int) ([]*domain.Task, error)

	// ListByAssigneeInPhase возвращает страницу задач фазы, назначенных
	// пользователю (domain.MyTasksPageSize)
	ListByAssigneeInPhase(ctx context.Context, userID, phaseID string, skip int) ([]*domain.Task, error)
}
