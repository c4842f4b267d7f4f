package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sentientmobilefurniture/faultline/pkg/services"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "validation error",
			err:      services.NewValidationError("scenario", "required"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "scenario",
		},
		{
			name:     "wrapped validation error",
			err:      fmt.Errorf("creating session: %w", services.NewValidationError("input_text", "required")),
			wantCode: http.StatusBadRequest,
			wantMsg:  "input_text",
		},
		{
			name:     "not found",
			err:      services.ErrNotFound,
			wantCode: http.StatusNotFound,
			wantMsg:  "resource not found",
		},
		{
			name:     "single-writer conflict",
			err:      services.ErrConflict,
			wantCode: http.StatusConflict,
			wantMsg:  "run in progress",
		},
		{
			name:     "not cancellable",
			err:      services.ErrNotCancellable,
			wantCode: http.StatusConflict,
			wantMsg:  "not in a cancellable state",
		},
		{
			name:     "already exists",
			err:      services.ErrAlreadyExists,
			wantCode: http.StatusConflict,
			wantMsg:  "already exists",
		},
		{
			name:     "unexpected error",
			err:      errors.New("the database caught fire"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he := mapServiceError(tt.err)
			assert.Equal(t, tt.wantCode, he.Code)
			assert.Contains(t, he.Message, tt.wantMsg)
		})
	}
}
