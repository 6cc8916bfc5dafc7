package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("thing not found")

var testMappings = []ErrorMapping{
	{Error: errMissing, Status: http.StatusNotFound, Message: "Thing not found."},
}

type errorBody struct {
	Error struct {
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func handle(t *testing.T, err error) (int, errorBody) {
	t.Helper()

	rec := httptest.NewRecorder()
	HandleError(context.Background(), rec, err, testMappings)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandleError_MappedAndWrapped(t *testing.T) {
	code, body := handle(t, fmt.Errorf("lookup: %w", errMissing))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Thing not found.", body.Error.Message)
}

func TestHandleError_ValidationErrors(t *testing.T) {
	type input struct {
		Title string `validate:"required"`
	}
	verr := validator.New().Struct(input{})
	require.Error(t, verr)

	code, body := handle(t, fmt.Errorf("create: %w", verr))

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation error", body.Error.Message)
	assert.Contains(t, string(body.Error.Details), `"field":"Title"`)
}

func TestHandleError_UnmappedIsOpaque(t *testing.T) {
	code, body := handle(t, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal error", body.Error.Message)
}
