package jobs

import (
	"errors"
)

// Job errors.
var (
	ErrJobNotFound   = errors.New("job not found")
	ErrEmptyUpdate   = errors.New("at least one field must be provided")
	ErrInvalidSalary = errors.New("salary must be a number")
)

// ValidationError reports job input that failed validation. Err is either
// validator.ValidationErrors or one of the sentinel errors above.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid job: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
