package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestDefaultCheckerConfig tests the DefaultCheckerConfig function
func TestDefaultCheckerConfig(t *testing.T) {
	config := DefaultCheckerConfig()

	if config.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", config.Timeout)
	}
}

// TestHTTPEndpointChecker tests probe outcomes per upstream status
func TestHTTPEndpointChecker(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		expectError bool
	}{
		{"200 is healthy", http.StatusOK, false},
		{"404 still means reachable", http.StatusNotFound, false},
		{"500 is unhealthy", http.StatusInternalServerError, true},
		{"503 is unhealthy", http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			err := HTTPEndpointChecker(server.URL, DefaultCheckerConfig())(context.Background())
			if tt.expectError && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

// TestHTTPEndpointChecker_Unreachable tests a closed server
func TestHTTPEndpointChecker_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	if err := HTTPEndpointChecker(url, DefaultCheckerConfig())(context.Background()); err == nil {
		t.Error("Expected error for closed server")
	}
}

// TestHTTPEndpointChecker_EmptyURL tests misconfiguration
func TestHTTPEndpointChecker_EmptyURL(t *testing.T) {
	if err := HTTPEndpointChecker("", DefaultCheckerConfig())(context.Background()); err == nil {
		t.Error("Expected error for empty url")
	}
}

// TestHTTPEndpointChecker_ContextTimeout tests that the probe honors ctx
func TestHTTPEndpointChecker_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := HTTPEndpointChecker(server.URL, DefaultCheckerConfig())(ctx); err == nil {
		t.Error("Expected error due to context timeout")
	}
}
