package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NewValidation("name is required", nil), http.StatusBadRequest},
		{NewNotFound("mood", nil), http.StatusNotFound},
		{NewStoreUnavailable("save mood", errors.New("locked")), http.StatusServiceUnavailable},
		{NewNotEnoughData("not enough data for insights"), http.StatusUnprocessableEntity},
		{NewInternal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.StatusCode(), tt.err.Error())
	}
}

func TestAppError_Wrapping(t *testing.T) {
	cause := errors.New("database is locked")
	err := fmt.Errorf("log dose: %w", NewStoreUnavailable("save the dose", cause))

	assert.True(t, HasCode(err, ErrStoreUnavailable))
	assert.False(t, HasCode(err, ErrValidation))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "could not save the dose, the data store is unavailable: database is locked", errors.Unwrap(err).Error())
	assert.False(t, HasCode(cause, ErrStoreUnavailable))
}
