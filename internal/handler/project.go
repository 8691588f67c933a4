package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/workdayz/workdayz-api/internal/domain"
	"github.com/workdayz/workdayz-api/internal/service"
)

// ProjectHandler обрабатывает эндпоинты проектов
type ProjectHandler struct {
	projectService *service.ProjectService
	phaseService   *service.PhaseService
}

// NewProjectHandler создает новый ProjectHandler
func NewProjectHandler(projectService *service.ProjectService, phaseService *service.PhaseService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		phaseService:   phaseService,
	}
}

// CreateProjectRequest представляет тело запроса на создание проекта
type CreateProjectRequest struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create обрабатывает POST /projects/new
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if !requireSelf(w, r, req.UserID) {
		return
	}

	// Валидация запроса: сервис доверяет границе и не перепроверяет
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" {
		RespondWithError(w, r, http.StatusBadRequest, "please provide a name for the project")
		return
	}
	if len(name) > maxNameLength {
		RespondWithError(w, r, http.StatusBadRequest, "project name cannot be longer than 52 characters")
		return
	}
	if wordCount(description) > maxDescriptionWordCount {
		RespondWithError(w, r, http.StatusBadRequest, "description cannot have more than 150 words")
		return
	}

	project, err := h.projectService.Create(r.Context(), req.UserID, name, description)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusCreated, project)
}

// CloseProjectRequest представляет тело запроса на закрытие проекта
type CloseProjectRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
	Reason    string `json:"reason"`
}

// Close обрабатывает POST /projects/close
func (h *ProjectHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req CloseProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if !requireSelf(w, r, req.UserID) {
		return
	}
	if !requireValidID(w, r, req.ProjectID, "project") {
		return
	}

	reason := domain.CloseReason(strings.ToLower(strings.TrimSpace(req.Reason)))
	if err := h.projectService.Close(r.Context(), req.UserID, req.ProjectID, reason); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "project closed successfully")
}

// MemberRequest представляет тело запроса на добавление/удаление участника
type MemberRequest struct {
	UserID    string `json:"userId"`
	MemberID  string `json:"memberId"`
	ProjectID string `json:"projectId"`
}

// AddMember обрабатывает POST /projects/member/add
func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if !requireSelf(w, r, req.UserID) {
		return
	}
	if !requireValidID(w, r, req.MemberID, "member") {
		return
	}
	if !requireValidID(w, r, req.ProjectID, "project") {
		return
	}

	if err := h.projectService.AddMember(r.Context(), req.UserID, req.MemberID, req.ProjectID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "added member successfully")
}

// RemoveMember обрабатывает POST /projects/member/remove
func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if !requireSelf(w, r, req.UserID) {
		return
	}
	if !requireValidID(w, r, req.MemberID, "member") {
		return
	}
	if !requireValidID(w, r, req.ProjectID, "project") {
		return
	}

	if err := h.projectService.RemoveMember(r.Context(), req.UserID, req.MemberID, req.ProjectID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "removed member successfully")
}

// Members обрабатывает GET /projects/{projectId}/members
func (h *ProjectHandler) Members(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if !requireValidID(w, r, projectID, "project") {
		return
	}

	members, err := h.projectService.Members(r.Context(), projectID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, members)
}

// Active обрабатывает GET /projects/active/user/{userId}
func (h *ProjectHandler) Active(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if !requireValidID(w, r, userID, "user") {
		return
	}

	projects, err := h.projectService.ActiveForUser(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, projects)
}

// Previous обрабатывает GET /projects/previous/user/{userId}?skip=...
func (h *ProjectHandler) Previous(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if !requireValidID(w, r, userID, "user") {
		return
	}

	projects, err := h.projectService.PreviousForUser(r.Context(), userID, skipParam(r))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, projects)
}

// Progress обрабатывает GET /projects/progress/{projectId}
func (h *ProjectHandler) Progress(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if !requireValidID(w, r, projectID, "project") {
		return
	}

	progress, err := h.phaseService.Progress(r.Context(), projectID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, progress)
}

// Details обрабатывает GET /projects/details/{projectId}
func (h *ProjectHandler) Details(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if !requireValidID(w, r, projectID, "project") {
		return
	}

	project, err := h.projectService.Details(r.Context(), projectID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, project)
}
