package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rednote-ops/internal/storage"
)

type failingProbe struct{}

func (failingProbe) Usage(context.Context) (int64, error) { return 0, errors.New("database is locked") }
func (failingProbe) Quota() int64                         { return 100 }

func TestHealthHandler(t *testing.T) {
	nearlyFull := storage.NewMemoryMedium(100)
	if err := nearlyFull.Set(context.Background(), "k", strings.Repeat("x", 94)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	tests := []struct {
		name           string
		method         string
		probe          StorageProbe
		expectedStatus int
		wantStatus     string
		wantCheck      string
	}{
		{
			name:           "healthy",
			method:         http.MethodGet,
			probe:          storage.NewMemoryMedium(1000),
			expectedStatus: http.StatusOK,
			wantStatus:     "healthy",
			wantCheck:      "ok",
		},
		{
			name:           "nearly full",
			method:         http.MethodGet,
			probe:          nearlyFull,
			expectedStatus: http.StatusOK,
			wantStatus:     "degraded",
			wantCheck:      "nearly_full",
		},
		{
			name:           "storage down",
			method:         http.MethodGet,
			probe:          failingProbe{},
			expectedStatus: http.StatusServiceUnavailable,
			wantStatus:     "unhealthy",
			wantCheck:      "error",
		},
		{
			name:           "wrong method",
			method:         http.MethodPost,
			probe:          storage.NewMemoryMedium(0),
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHealthHandler(tt.probe).ServeHTTP(w, httptest.NewRequest(tt.method, "/api/health", nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.wantStatus == "" {
				return
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if resp.Checks["storage"] != tt.wantCheck {
				t.Errorf("Checks[storage] = %q, want %q", resp.Checks["storage"], tt.wantCheck)
			}
		})
	}
}
