package domain

import "time"

// Job represents a job posting.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      float64   `json:"salary"`
	CreatedAt   time.Time `json:"created_at"`
}
