package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/workdayz/workdayz-api/internal/domain"
	"github.com/workdayz/workdayz-api/internal/service"
)

// TaskHandler обрабатывает эндпоинты задач
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler создает новый TaskHandler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTaskRequest представляет тело запроса на создание задачи
type CreateTaskRequest struct {
	UserID      string `json:"userId"`
	ProjectID   string `json:"projectId"`
	PhaseID     string `json:"phaseId"`
	MemberID    string `json:"memberId"` // исполнитель задачи
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create обрабатывает POST /tasks/new
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
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
	if !requireValidID(w, r, req.MemberID, "member") {
		return
	}

	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" {
		RespondWithError(w, r, http.StatusBadRequest, "please provide a task name")
		return
	}
	if len(name) > maxNameLength {
		RespondWithError(w, r, http.StatusBadRequest, "task name cannot be longer than 52 characters")
		return
	}
	if description == "" {
		RespondWithError(w, r, http.StatusBadRequest, "please provide a task description")
		return
	}
	if wordCount(description) > maxDescriptionWordCount {
		RespondWithError(w, r, http.StatusBadRequest, "description cannot have more than 150 words")
		return
	}

	task, err := h.taskService.Create(r.Context(), req.UserID, req.ProjectID, req.PhaseID, req.MemberID, name, description)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusCreated, task)
}

// UpdateTaskStatusRequest представляет тело запроса на смену статуса задачи
type UpdateTaskStatusRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
	TaskID    string `json:"taskId"`
	Status    string `json:"status"`
}

// UpdateStatus обрабатывает POST /tasks/update/status
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskStatusRequest
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
	if !requireValidID(w, r, req.TaskID, "task") {
		return
	}

	status := domain.Status(strings.TrimSpace(req.Status))
	if err := h.taskService.UpdateStatus(r.Context(), req.UserID, req.ProjectID, req.TaskID, status); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "updated task status successfully")
}

// ReassignTaskRequest представляет тело запроса на переназначение задачи
type ReassignTaskRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
	TaskID    string `json:"taskId"`
	MemberID  string `json:"memberId"` // новый исполнитель
}

// Reassign обрабатывает POST /tasks/reassign
func (h *TaskHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	var req ReassignTaskRequest
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
	if !requireValidID(w, r, req.TaskID, "task") {
		return
	}
	if !requireValidID(w, r, req.MemberID, "member") {
		return
	}

	if err := h.taskService.Reassign(r.Context(), req.UserID, req.ProjectID, req.TaskID, req.MemberID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "reassigned task successfully")
}

// DeleteTaskRequest представляет тело запроса на удаление задачи
type DeleteTaskRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
	TaskID    string `json:"taskId"`
}

// Delete обрабатывает POST /tasks/delete
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteTaskRequest
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
	if !requireValidID(w, r, req.TaskID, "task") {
		return
	}

	if err := h.taskService.Delete(r.Context(), req.UserID, req.ProjectID, req.TaskID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, "deleted task successfully")
}

// List обрабатывает GET /tasks/{phaseId}/tasks?skip=...
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	phaseID := chi.URLParam(r, "phaseId")
	if !requireValidID(w, r, phaseID, "phase") {
		return
	}

	tasks, err := h.taskService.ListInPhase(r.Context(), phaseID, skipParam(r))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, tasks)
}

// ListMine обрабатывает GET /tasks/{phaseId}/tasks/{userId}?skip=...
func (h *TaskHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	phaseID := chi.URLParam(r, "phaseId")
	if !requireValidID(w, r, phaseID, "phase") {
		return
	}

	userID := chi.URLParam(r, "userId")
	if !requireValidID(w, r, userID, "user") {
		return
	}

	tasks, err := h.taskService.ListMine(r.Context(), userID, phaseID, skipParam(r))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithData(w, r, http.StatusOK, tasks)
}
