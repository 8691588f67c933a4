package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/workdayz/workdayz-api/internal/domain"
	"github.com/workdayz/workdayz-api/internal/service"
)

// PhaseHandler обрабатывает эндпоинты фаз
type PhaseHandler struct {
	phaseService *service.PhaseService
}

// NewPhaseHandler создает новый PhaseHandler
func NewPhaseHandler(phaseService *service.PhaseService) *PhaseHandler {
	return &PhaseHandler{
		phaseService: phaseService,
	}
}

// CreatePhaseRequest представляет тело запроса на создание фазы
type CreatePhaseRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
}

// Create обрабатывает POST /phases/new
func (h *PhaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePhaseRequest
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

	name := strings.TrimSpace(req.Name)
	if name == "" {
		RespondWithError(w, r, http.StatusBadRequest, "please provide a phase name")
		return
	}
	if len(name) > maxNameLength {
		RespondWithError(w, r, http.StatusBadRequest, "phase name cannot be longer than 52 characters")
		return
	}

	phase, err := h.phaseService.Create(r.Context(), req.UserID, req.ProjectID, name)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusCreated, phase)
}

// UpdatePhaseStatusRequest представляет тело запроса на смену статуса фазы
type UpdatePhaseStatusRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
	PhaseID   string `json:"phaseId"`
	Status    string `json:"status"`
}

// UpdateStatus обрабатывает POST /phases/update/status
func (h *PhaseHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdatePhaseStatusRequest
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
	if !requireValidID(w, r, req.PhaseID, "phase") {
		return
	}

	status := domain.Status(strings.TrimSpace(req.Status))
	if err := h.phaseService.UpdateStatus(r.Context(), req.UserID, req.ProjectID, req.PhaseID, status); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "updated phase status successfully")
}

// DeletePhaseRequest представляет тело запроса на удаление фазы
type DeletePhaseRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
	PhaseID   string `json:"phaseId"`
}

// Delete обрабатывает POST /phases/delete
func (h *PhaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeletePhaseRequest
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
	if !requireValidID(w, r, req.PhaseID, "phase") {
		return
	}

	if err := h.phaseService.Delete(r.Context(), req.UserID, req.ProjectID, req.PhaseID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "deleted phase successfully")
}

// List обрабатывает GET /phases/{projectId}/phases
func (h *PhaseHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")
	if !requireValidID(w, r, projectID, "project") {
		return
	}

	phases, err := h.phaseService.ListForProject(r.Context(), projectID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, phases)
}
