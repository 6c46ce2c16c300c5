package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantCode int
		wantMsg  string
	}{
		{"bad request", NewBadRequestError("invalid rent type", cause), http.StatusBadRequest, "invalid rent type: boom"},
		{"internal server", NewInternalServerError("failed to generate invoice"), http.StatusInternalServerError, "failed to generate invoice"},
		{"internal with cause", NewInternalError("failed to render invoice", cause), http.StatusInternalServerError, "failed to render invoice: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("render: %w", NewInternalError("failed to render invoice", errors.New("pdf")))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.EqualError(t, errors.Unwrap(appErr), "pdf")

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
