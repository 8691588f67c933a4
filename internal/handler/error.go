package handler

import (
	"errors"
	"net/http"

	"github.com/workdayz/workdayz-api/internal/domain"
)

// HandleError преобразует доменные ошибки в HTTP ответы.
// Коды унифицированы: 400 — некорректный ввод, 401 — проблемы с учетными
// данными, 403 — нет прав, 404 — сущность не найдена, 409 — превышение
// лимитов, 500 — все остальное.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidCloseReason):
		RespondWithError(w, r, http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken):
		RespondWithError(w, r, http.StatusUnauthorized, unwrapMessage(err))

	case errors.Is(err, domain.ErrNotProjectCreator),
		errors.Is(err, domain.ErrNotProjectMember),
		errors.Is(err, domain.ErrAssigneeNotMember),
		errors.Is(err, domain.ErrNotTaskAssignee):
		RespondWithError(w, r, http.StatusForbidden, unwrapMessage(err))

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrPhaseNotFound),
		errors.Is(err, domain.ErrTaskNotFound):
		RespondWithError(w, r, http.StatusNotFound, unwrapMessage(err))

	case errors.Is(err, domain.ErrProjectQuota),
		errors.Is(err, domain.ErrMemberLimit),
		errors.Is(err, domain.ErrPhaseLimit),
		errors.Is(err, domain.ErrEmailTaken):
		RespondWithError(w, r, http.StatusConflict, unwrapMessage(err))

	default:
		RespondWithError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// unwrapMessage возвращает сообщение доменной ошибки без технических
// префиксов обертки
func unwrapMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrInvalidCredentials, domain.ErrUnauthorized, domain.ErrInvalidToken,
		domain.ErrNotProjectCreator, domain.ErrNotProjectMember,
		domain.ErrAssigneeNotMember, domain.ErrNotTaskAssignee,
		domain.ErrUserNotFound, domain.ErrProjectNotFound,
		domain.ErrPhaseNotFound, domain.ErrTaskNotFound,
		domain.ErrProjectQuota, domain.ErrMemberLimit,
		domain.ErrPhaseLimit, domain.ErrEmailTaken,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
