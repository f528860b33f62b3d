package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/rat-api/internal/domain"
	"github.com/aidar/rat-api/internal/middleware"
)

// ProjectService бизнес-логика, которую использует ProjectHandler
type ProjectService interface {
	GetProjectByID(ctx context.Context, projectID int) (*domain.ProjectDetail, error)
	ListProjectsForMember(ctx context.Context, memberID int) (*domain.ProjectStats, error)
	CreateProject(ctx context.Context, memberID int, input domain.NewProject) (*domain.ProjectDetail, error)
	ListProjectTypes(ctx context.Context) ([]domain.ProjectType, error)
}

// MemberResolver сопоставляет claim идентичности участнику (create-or-get)
type MemberResolver interface {
	ResolveMember(ctx context.Context, claim string) (int, error)
}

// ProjectHandler обрабатывает эндпоинты проектов
type ProjectHandler struct {
	projectService ProjectService
	resolver       MemberResolver
}

// NewProjectHandler создает новый ProjectHandler
func NewProjectHandler(projectService ProjectService, resolver MemberResolver) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		resolver:       resolver,
	}
}

// GetProject обрабатывает GET /projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	// Невалидный ID отсекается до обращения к хранилищу
	projectID, err := domain.ParseProjectID(chi.URLParam(r, "id"))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	project, err := h.projectService.GetProjectByID(r.Context(), projectID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, project)
}

// ListProjects обрабатывает GET /projects (проекты текущего пользователя)
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	memberID, err := h.currentMember(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	stats, err := h.projectService.ListProjectsForMember(r.Context(), memberID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, stats)
}

// CreateProject обрабатывает POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	memberID, err := h.currentMember(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var req domain.NewProject
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, domain.CodeBadRequest, "invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), memberID, req)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, project)
}

// ListProjectTypes обрабатывает GET /project-types
func (h *ProjectHandler) ListProjectTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.projectService.ListProjectTypes(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, types)
}

// currentMember определяет участника по claim'у из контекста.
// Без claim'а резолвер возвращает domain.ErrNoAccess
func (h *ProjectHandler) currentMember(r *http.Request) (int, error) {
	claim := middleware.GetIdentityClaimFromContext(r.Context())
	return h.resolver.ResolveMember(r.Context(), claim)
}
