package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("domain errors are preserved", func(t *testing.T) {
		original := NewValidationError("bad field", map[string]any{"field": "description"})
		mapped := ToDomainError(original)
		assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
		assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	})

	t.Run("unique violations map to conflict", func(t *testing.T) {
		mapped := ToDomainError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
		assert.Equal(t, "CONFLICT", mapped.Code)
		assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	})

	t.Run("missing rows map to not found", func(t *testing.T) {
		mapped := ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, "NOT_FOUND", mapped.Code)
		assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	})

	t.Run("unknown errors become opaque internal failures", func(t *testing.T) {
		cause := errors.New("connection refused")
		mapped := ToDomainError(cause)
		assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
		assert.Equal(t, "internal server error", mapped.Message)
		assert.ErrorIs(t, mapped, cause)
	})
}

func TestNotFoundShape(t *testing.T) {
	err := NewNotFound("service request", nil)
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, "service request not found", de.Message)
	assert.NotNil(t, de.Details)
}
