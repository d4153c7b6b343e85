package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("field validation maps to 400 with field detail", func(t *testing.T) {
		de := ToDomainError(NewFieldValidation("title", "le titre est obligatoire"))
		require.NotNil(t, de)
		assert.Equal(t, "VALIDATION_FAILED", de.Code)
		assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
		assert.Equal(t, "le titre est obligatoire", de.Message)
		assert.Equal(t, "title", de.Details["field"])
	})

	t.Run("archived state maps to 400 with ticket detail", func(t *testing.T) {
		de := ToDomainError(NewArchivedState("t1"))
		require.NotNil(t, de)
		assert.Equal(t, "TICKET_ARCHIVED", de.Code)
		assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
		assert.Equal(t, "t1", de.Details["ticket_id"])
	})

	t.Run("reference validation maps to 400", func(t *testing.T) {
		de := ToDomainError(NewReferenceValidation("created_by", "utilisateur invalide"))
		require.NotNil(t, de)
		assert.Equal(t, "INVALID_REFERENCE", de.Code)
		assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
		assert.Equal(t, "created_by", de.Details["field"])
	})

	t.Run("domain errors pass through unchanged", func(t *testing.T) {
		de := ToDomainError(NewUnauthorized("identifiants invalides"))
		require.NotNil(t, de)
		assert.Equal(t, "UNAUTHORIZED", de.Code)
		assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
	})

	t.Run("unknown errors collapse to an opaque 500", func(t *testing.T) {
		cause := errors.New("pool exhausted")
		de := ToDomainError(cause)
		require.NotNil(t, de)
		assert.Equal(t, "INTERNAL_ERROR", de.Code)
		assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
		assert.Equal(t, "internal server error", de.Message)
		assert.ErrorIs(t, de, cause)
	})

	t.Run("wrapped core errors are still recognized", func(t *testing.T) {
		wrapped := errors.Join(errors.New("outer"), NewFieldValidation("status", "statut invalide"))
		de := ToDomainError(wrapped)
		require.NotNil(t, de)
		assert.Equal(t, "VALIDATION_FAILED", de.Code)
	})
}
