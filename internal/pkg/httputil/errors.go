package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/bissquit/job-board/internal/pkg/ctxlog"
	"github.com/go-playground/validator/v10"
)

// ErrorMapping defines how a domain error maps to an HTTP response.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string // if empty, uses err.Error()
}

// HandleError maps a domain error to an HTTP response using provided mappings.
// Validation failures always become 400 with field details. Anything unmapped is
// logged and answered with a generic 500.
func HandleError(ctx context.Context, w http.ResponseWriter, err error, mappings []ErrorMapping) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		ValidationError(w, err)
		return
	}

	for _, m := range mappings {
		if errors.Is(err, m.Error) {
			msg := m.Message
			if msg == "" {
				msg = m.Error.Error()
			}
			Error(w, m.Status, msg)
			return
		}
	}

	ctxlog.FromContext(ctx).Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, "internal error")
}
