package jobs

import (
	"context"

	"github.com/bissquit/job-board/internal/domain"
)

// Repository defines the interface for job storage. Update and delete are single
// atomic operations keyed by id; an unknown or malformed id yields ErrJobNotFound.
type Repository interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]domain.Job, error)
	UpdateJob(ctx context.Context, id string, patch JobPatch) (*domain.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// JobFilter holds conjunctive search criteria. Nil fields do not filter.
// Title and Location match as case-insensitive literal substrings.
type JobFilter struct {
	Title     *string
	Location  *string
	MinSalary *float64
}

// IsEmpty reports whether no criteria are set.
func (f JobFilter) IsEmpty() bool {
	return f.Title == nil && f.Location == nil && f.MinSalary == nil
}

// JobPatch holds the fields to overwrite. Nil fields keep their stored value.
type JobPatch struct {
	Title       *string
	Description *string
	Company     *string
	Location    *string
	Salary      *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p JobPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Company == nil &&
		p.Location == nil && p.Salary == nil
}

// Apply overwrites the fields of job that are set in p.
func (p JobPatch) Apply(job *domain.Job) {
	if p.Title != nil {
		job.Title = *p.Title
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.Company != nil {
		job.Company = *p.Company
	}
	if p.Location != nil {
		job.Location = *p.Location
	}
	if p.Salary != nil {
		job.Salary = *p.Salary
	}
}
