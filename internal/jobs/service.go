// Package jobs provides HTTP handlers and business logic for job postings.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bissquit/job-board/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Service implements job business logic.
type Service struct {
	repo      Repository
	validator *validator.Validate
	now       func() time.Time
}

// NewService creates a new job service.
func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		validator: newValidator(),
		now:       time.Now,
	}
}

// CreateJobInput holds data for creating a job. All fields are required.
type CreateJobInput struct {
	Title       string   `json:"title" validate:"required,notblank"`
	Description string   `json:"description" validate:"required,notblank"`
	Company     string   `json:"company" validate:"required,notblank"`
	Location    string   `json:"location" validate:"required,notblank"`
	Salary      *float64 `json:"salary" validate:"required,gte=0"`
}

// UpdateJobInput holds data for updating a job. Omitted fields are left unchanged,
// supplied ones follow the same rules as on creation.
type UpdateJobInput struct {
	Title       *string  `json:"title" validate:"omitnil,notblank"`
	Description *string  `json:"description" validate:"omitnil,notblank"`
	Company     *string  `json:"company" validate:"omitnil,notblank"`
	Location    *string  `json:"location" validate:"omitnil,notblank"`
	Salary      *float64 `json:"salary" validate:"omitnil,gte=0"`
}

// SearchInput holds raw search criteria. Blank strings and a nil salary are ignored.
type SearchInput struct {
	Title     string
	Location  string
	MinSalary *float64
}

// Create validates input and stores a new job.
func (s *Service) Create(ctx context.Context, input CreateJobInput) (*domain.Job, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, &ValidationError{Err: err}
	}

	job := &domain.Job{
		Title:       input.Title,
		Description: input.Description,
		Company:     input.Company,
		Location:    input.Location,
		Salary:      *input.Salary,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	recordMutation("create")

	return job, nil
}

// Get returns a job by ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.repo.GetJob(ctx, id)
}

// Update overwrites the supplied fields of job id and returns the stored result.
func (s *Service) Update(ctx context.Context, id string, input UpdateJobInput) (*domain.Job, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, &ValidationError{Err: err}
	}

	patch := JobPatch{
		Title:       input.Title,
		Description: input.Description,
		Company:     input.Company,
		Location:    input.Location,
		Salary:      input.Salary,
	}
	if patch.IsEmpty() {
		return nil, &ValidationError{Err: ErrEmptyUpdate}
	}

	job, err := s.repo.UpdateJob(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	recordMutation("update")

	return job, nil
}

// Delete removes job id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteJob(ctx, id); err != nil {
		return err
	}
	recordMutation("delete")
	return nil
}

// List returns every job.
func (s *Service) List(ctx context.Context) ([]domain.Job, error) {
	return s.repo.ListJobs(ctx, JobFilter{})
}

// Search returns jobs matching all supplied criteria.
func (s *Service) Search(ctx context.Context, input SearchInput) ([]domain.Job, error) {
	var filter JobFilter

	if title := strings.TrimSpace(input.Title); title != "" {
		filter.Title = &title
	}
	if location := strings.TrimSpace(input.Location); location != "" {
		filter.Location = &location
	}
	filter.MinSalary = input.MinSalary

	return s.repo.ListJobs(ctx, filter)
}
