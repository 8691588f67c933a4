package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/workdayz/workdayz-api/internal/domain"
	"github.com/workdayz/workdayz-api/internal/middleware"
)

// Лимиты валидации входных данных на границе HTTP.
// Сервисы этим полям доверяют и повторно их не проверяют.
const (
	maxNameLength           = 52
	maxDescriptionWordCount = 150
	minPasswordLength       = 8
)

// wordCount возвращает число слов в строке
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// requireValidID проверяет что id имеет корректный формат; иначе пишет 400.
// Некорректные идентификаторы не доходят до слоя данных.
func requireValidID(w http.ResponseWriter, r *http.Request, id, label string) bool {
	if !domain.IsValidID(id) {
		RespondWithError(w, r, http.StatusBadRequest, "invalid "+label)
		return false
	}
	return true
}

// requireSelf проверяет что userId из тела запроса совпадает с identity
// из токена; иначе пишет 401 и запрос не доходит до сервисов
func requireSelf(w http.ResponseWriter, r *http.Request, claimedUserID string) bool {
	if claimedUserID == "" || middleware.GetUserIDFromContext(r.Context()) != claimedUserID {
		RespondWithError(w, r, http.StatusUnauthorized, "token does not match the provided userId")
		return false
	}
	return true
}

// skipParam читает query-параметр skip (по умолчанию 0)
func skipParam(r *http.Request) int {
	skip, err := strconv.Atoi(r.URL.Query().Get("skip"))
	if err != nil || skip < 0 {
		return 0
	}
	return skip
}

// validEmail выполняет минимальную структурную проверку email
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".") && !strings.ContainsAny(email, " \t")
}
