package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/workdayz/workdayz-api/internal/domain"
	"github.com/workdayz/workdayz-api/internal/service"
)

// UserHandler обрабатывает эндпоинты пользователей
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRequest представляет тело запроса на регистрацию
type RegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Skills      string `json:"skills"`
	JobTitle    string `json:"jobTitle"`
	Description string `json:"description"`
	Img         string `json:"img"`
}

// SessionResponse представляет пользователя с выданным токеном
type SessionResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register обрабатывает POST /users/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	req.Skills = strings.TrimSpace(req.Skills)
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.Description = strings.TrimSpace(req.Description)

	// Валидация запроса
	if req.FullName == "" || req.Email == "" || req.Password == "" ||
		req.Skills == "" || req.JobTitle == "" || req.Description == "" {
		RespondWithError(w, r, http.StatusBadRequest, "please fill out all fields")
		return
	}

	if !validEmail(req.Email) {
		RespondWithError(w, r, http.StatusBadRequest, "please provide a valid email")
		return
	}

	if len(req.Password) < minPasswordLength {
		RespondWithError(w, r, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	if len(req.FullName) > maxNameLength || len(req.JobTitle) > maxNameLength {
		RespondWithError(w, r, http.StatusBadRequest, "name and job title cannot be longer than 52 characters")
		return
	}

	if wordCount(req.Description) > maxDescriptionWordCount {
		RespondWithError(w, r, http.StatusBadRequest, "description cannot have more than 150 words")
		return
	}

	user := &domain.User{
		FullName:    req.FullName,
		Email:       req.Email,
		Skills:      req.Skills,
		JobTitle:    req.JobTitle,
		Description: req.Description,
		Img:         strings.TrimSpace(req.Img),
	}

	created, token, err := h.userService.Register(r.Context(), user, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusCreated, SessionResponse{User: created, Token: token})
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login обрабатывает POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		RespondWithError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := h.userService.Login(r.Context(), email, password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, SessionResponse{User: user, Token: token})
}

// UpdateRequest представляет тело запроса на обновление профиля.
// Email и пароль через этот эндпоинт не меняются.
type UpdateRequest struct {
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	Skills      string `json:"skills"`
	JobTitle    string `json:"jobTitle"`
	Description string `json:"description"`
	Img         string `json:"img"`
}

// Update обрабатывает POST /users/update
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if !requireSelf(w, r, req.UserID) {
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.JobTitle = strings.TrimSpace(req.JobTitle)
	req.Description = strings.TrimSpace(req.Description)

	if len(req.FullName) > maxNameLength || len(req.JobTitle) > maxNameLength {
		RespondWithError(w, r, http.StatusBadRequest, "name and job title cannot be longer than 52 characters")
		return
	}

	if wordCount(req.Description) > maxDescriptionWordCount {
		RespondWithError(w, r, http.StatusBadRequest, "description cannot have more than 150 words")
		return
	}

	upd := domain.UserUpdate{
		FullName:    req.FullName,
		Skills:      strings.TrimSpace(req.Skills),
		JobTitle:    req.JobTitle,
		Description: req.Description,
		Img:         strings.TrimSpace(req.Img),
	}

	if err := h.userService.Update(r.Context(), req.UserID, upd); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "updated successfully")
}

// Search обрабатывает GET /users/search/{query}
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(chi.URLParam(r, "query"))
	if query == "" {
		RespondWithError(w, r, http.StatusBadRequest, "search query is required")
		return
	}

	users, err := h.userService.Search(r.Context(), query)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, users)
}
