// Package postgres provides PostgreSQL implementation of the job repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bissquit/job-board/internal/domain"
	"github.com/bissquit/job-board/internal/jobs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = "id, title, description, company, location, salary, created_at"

// Repository implements jobs.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateJob inserts job and assigns its ID.
func (r *Repository) CreateJob(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (title, description, company, location, salary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		job.Title,
		job.Description,
		job.Company,
		job.Location,
		job.Salary,
		job.CreatedAt,
	).Scan(&job.ID)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID.
func (r *Repository) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, jobs.ErrJobNotFound
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, jobs.ErrJobNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// ListJobs returns the jobs matching filter, oldest first.
func (r *Repository) ListJobs(ctx context.Context, filter jobs.JobFilter) ([]domain.Job, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		result = append(result, *job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}

	return result, nil
}

// UpdateJob applies patch in a single UPDATE ... RETURNING statement.
func (r *Repository) UpdateJob(ctx context.Context, id string, patch jobs.JobPatch) (*domain.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, jobs.ErrJobNotFound
	}

	query, args := buildUpdateQuery(id, patch)

	job, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, jobs.ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// DeleteJob removes job id.
func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return jobs.ErrJobNotFound
	}

	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return jobs.ErrJobNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Company,
		&job.Location,
		&job.Salary,
		&job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.CreatedAt = job.CreatedAt.UTC()
	return &job, nil
}

func buildListQuery(filter jobs.JobFilter) (string, []any) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []any{}
	argNum := 1

	if filter.Title != nil {
		query += fmt.Sprintf(` AND title ILIKE $%d ESCAPE '\'`, argNum)
		args = append(args, containsPattern(*filter.Title))
		argNum++
	}

	if filter.Location != nil {
		query += fmt.Sprintf(` AND location ILIKE $%d ESCAPE '\'`, argNum)
		args = append(args, containsPattern(*filter.Location))
		argNum++
	}

	if filter.MinSalary != nil {
		query += fmt.Sprintf(" AND salary >= $%d", argNum)
		args = append(args, *filter.MinSalary)
	}

	query += " ORDER BY created_at ASC, id ASC"

	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere in the value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func buildUpdateQuery(id string, patch jobs.JobPatch) (string, []any) {
	var sets []string
	args := []any{}
	argNum := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argNum))
		args = append(args, value)
		argNum++
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Company != nil {
		add("company", *patch.Company)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Salary != nil {
		add("salary", *patch.Salary)
	}

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING `+jobColumns,
		strings.Join(sets, ", "), argNum)
	args = append(args, id)

	return query, args
}
