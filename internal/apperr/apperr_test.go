package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.HTTPStatus(), tt.kind.String())
	}
}

func TestErrorsIs_MatchesKindThroughWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("get product: %w", NotFound("Product not found"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestPublic(t *testing.T) {
	t.Parallel()

	status, msg := Public(Conflict("User already exists"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already exists", msg)

	status, msg = Public(&Error{Kind: KindForbidden})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Forbidden", msg)

	status, msg = Public(Internal(errors.New("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", msg)

	status, msg = Public(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", msg)
}

func TestInternal_UnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "disk full")
}
