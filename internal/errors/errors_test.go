package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/emojiabc/internal/errors"
)

func TestAsAppError(t *testing.T) {
	bad := errors.NewBadRequestError("no session")
	wrapped := fmt.Errorf("handler: %w", bad)

	got := errors.AsAppError(wrapped)
	assert.Same(t, bad, got)
	assert.Equal(t, http.StatusBadRequest, got.Status)

	plain := stderrors.New("disk full")
	internal := errors.AsAppError(plain)
	assert.Equal(t, errors.ErrCodeInternal, internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.ErrorIs(t, internal, plain)
	assert.Contains(t, internal.Error(), "disk full")
}
