package jobs

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/bissquit/job-board/internal/domain"
	"github.com/bissquit/job-board/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
)

// Handler handles HTTP requests for the jobs module.
type Handler struct {
	service *Service
}

// NewHandler creates a new jobs handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers read-only routes.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/alljobs", h.ListJobs)
	r.Get("/jobs", h.SearchJobs)
	r.Get("/jobs/{id}", h.GetJob)
}

// RegisterProtectedRoutes registers routes that always require authentication.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/jobs", h.CreateJob)
}

// RegisterWriteRoutes registers update and delete. The caller decides whether
// they sit behind the auth gate.
func (h *Handler) RegisterWriteRoutes(r chi.Router) {
	r.Put("/jobs/{id}", h.UpdateJob)
	r.Delete("/jobs/{id}", h.DeleteJob)
}

// MessageResponse is a body carrying only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListResponse is the body of GET /alljobs.
type ListResponse struct {
	Message string       `json:"message"`
	Jobs    []domain.Job `json:"job"`
}

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrJobNotFound, Status: http.StatusNotFound, Message: "Job not found."},
	{Error: ErrEmptyUpdate, Status: http.StatusBadRequest},
	{Error: ErrInvalidSalary, Status: http.StatusBadRequest},
}

// CreateJob handles POST /jobs.
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if _, err := h.service.Create(r.Context(), req); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, MessageResponse{Message: "Job created successfully."})
}

// ListJobs handles GET /alljobs.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.List(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, ListResponse{Message: "Jobs", Jobs: jobs})
}

// GetJob handles GET /jobs/{id}.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, job)
}

// SearchJobs handles GET /jobs?title=&location=&salary=.
func (h *Handler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	minSalary, err := parseSalary(query.Get("salary"))
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	jobs, err := h.service.Search(r.Context(), SearchInput{
		Title:     query.Get("title"),
		Location:  query.Get("location"),
		MinSalary: minSalary,
	})
	if err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, jobs)
}

// UpdateJob handles PUT /jobs/{id}.
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var req UpdateJobInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if _, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, MessageResponse{Message: "Job updated successfully."})
}

// DeleteJob handles DELETE /jobs/{id}.
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, MessageResponse{Message: "Job deleted successfully."})
}

// parseSalary parses the salary query parameter. An absent or blank value means no
// salary criterion.
func parseSalary(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	salary, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return nil, ErrInvalidSalary
	}
	return &salary, nil
}
