// Package memory provides an in-process job repository.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/bissquit/job-board/internal/domain"
	"github.com/bissquit/job-board/internal/jobs"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Repository implements jobs.Repository. Jobs are kept in insertion order.
type Repository struct {
	mu    sync.RWMutex
	order []string
	jobs  map[string]domain.Job
}

// NewRepository creates an empty repository.
func NewRepository() *Repository {
	return &Repository{
		jobs: make(map[string]domain.Job),
	}
}

// CreateJob stores job and assigns its ID.
func (r *Repository) CreateJob(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job.ID = uuid.NewString()
	r.jobs[job.ID] = *job
	r.order = append(r.order, job.ID)
	return nil
}

// GetJob retrieves a job by ID.
func (r *Repository) GetJob(_ context.Context, id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, jobs.ErrJobNotFound
	}
	return &job, nil
}

// ListJobs returns the jobs matching filter in insertion order.
func (r *Repository) ListJobs(_ context.Context, filter jobs.JobFilter) ([]domain.Job, error) {
	m := newMatcher(filter)

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Job, 0, len(r.order))
	for _, id := range r.order {
		job := r.jobs[id]
		if m.match(job) {
			result = append(result, job)
		}
	}
	return result, nil
}

// UpdateJob applies patch to job id under the write lock.
func (r *Repository) UpdateJob(_ context.Context, id string, patch jobs.JobPatch) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, jobs.ErrJobNotFound
	}

	patch.Apply(&job)
	r.jobs[id] = job
	return &job, nil
}

// DeleteJob removes job id.
func (r *Repository) DeleteJob(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[id]; !ok {
		return jobs.ErrJobNotFound
	}

	delete(r.jobs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// matcher evaluates a JobFilter with Unicode case folding.
type matcher struct {
	fold      cases.Caser
	title     string
	location  string
	minSalary *float64
}

func newMatcher(filter jobs.JobFilter) *matcher {
	m := &matcher{
		fold:      cases.Fold(),
		minSalary: filter.MinSalary,
	}
	if filter.Title != nil {
		m.title = m.fold.String(*filter.Title)
	}
	if filter.Location != nil {
		m.location = m.fold.String(*filter.Location)
	}
	return m
}

func (m *matcher) match(job domain.Job) bool {
	if m.title != "" && !strings.Contains(m.fold.String(job.Title), m.title) {
		return false
	}
	if m.location != "" && !strings.Contains(m.fold.String(job.Location), m.location) {
		return false
	}
	if m.minSalary != nil && job.Salary < *m.minSalary {
		return false
	}
	return true
}
