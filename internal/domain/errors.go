package domain

import "errors"

// Доменные ошибки. Сервисы оборачивают низкоуровневые ошибки контекстом,
// HTTP-обработчики транслируют их в статус-коды.
var (
	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrProjectNotFound возвращается когда открытый проект не найден
	ErrProjectNotFound = errors.New("project not found")

	// ErrPhaseNotFound возвращается когда фаза не найдена
	ErrPhaseNotFound = errors.New("phase not found")

	// ErrTaskNotFound возвращается когда задача не найдена
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmailTaken возвращается при регистрации с занятым email
	ErrEmailTaken = errors.New("email is already taken")

	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized возвращается при отсутствии или несоответствии учетных данных
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")

	// ErrNotProjectCreator возвращается когда операция доступна только создателю проекта
	ErrNotProjectCreator = errors.New("only the project creator can perform this action")

	// ErrNotProjectMember возвращается когда пользователь не состоит в проекте
	ErrNotProjectMember = errors.New("you are not a member of this project")

	// ErrAssigneeNotMember возвращается когда назначаемый пользователь не состоит в проекте
	ErrAssigneeNotMember = errors.New("provided user is not a member of this project")

	// ErrNotTaskAssignee возвращается когда статус задачи меняет не исполнитель и не создатель
	ErrNotTaskAssignee = errors.New("only the creator and the assigned member can update the status")

	// ErrProjectQuota возвращается при превышении лимита активных проектов пользователя
	ErrProjectQuota = errors.New("user is already a part of 15 active projects")

	// ErrMemberLimit возвращается при превышении лимита участников проекта
	ErrMemberLimit = errors.New("project already has 100 members")

	// ErrPhaseLimit возвращается при превышении лимита фаз проекта
	ErrPhaseLimit = errors.New("a project has a limit of 20 phases")

	// ErrInvalidStatus возвращается при неизвестном статусе фазы или задачи
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidCloseReason возвращается при недопустимой причине закрытия проекта
	ErrInvalidCloseReason = errors.New("closing a project can only have two reasons: completed or cancelled")
)
