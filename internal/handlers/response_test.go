package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rednote-ops/internal/service"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"validation", &service.ValidationError{Field: "title", Message: "cannot be empty"}, http.StatusBadRequest},
		{"invalid input", service.WrapError(service.ErrInvalidInput, "bad"), http.StatusBadRequest},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"external", fmt.Errorf("x: %w", service.ErrExternalService), http.StatusBadGateway},
		{"storage full", service.ErrStorageFull, http.StatusInsufficientStorage},
		{"storage write", service.ErrStorageWrite, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handleServiceError(w, context.Background(), tt.err, "default")

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Error == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}
