package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/reminder-admin/internal/handler"
)

// stubPinger implements handler.Pinger for health endpoints.
type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func newEngine(p handler.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.Register(r, handler.Deps{
		Pinger: p,
		Status: handler.StatusInfo{Service: "reminder-admin", Version: "9.9.9", Env: "test", Driver: "sqlite"},
	})
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHealthRoutes(t *testing.T) {
	cases := []struct {
		name   string
		pinger handler.Pinger
		method string
		path   string
		want   int
	}{
		{"api readiness ok", stubPinger{}, http.MethodGet, "/api/v1/health/ready", http.StatusOK},
		{"api readiness down", stubPinger{err: errors.New("db down")}, http.MethodGet, "/api/v1/health/ready", http.StatusServiceUnavailable},
		{"api liveness", stubPinger{err: errors.New("db down")}, http.MethodGet, "/api/v1/health/live", http.StatusOK},
		{"root liveness", stubPinger{}, http.MethodGet, "/live", http.StatusOK},
		{"root readiness ok", stubPinger{}, http.MethodGet, "/ready", http.StatusOK},
		{"root readiness down", stubPinger{err: errors.New("db down")}, http.MethodGet, "/ready", http.StatusServiceUnavailable},
		{"readiness without storage", nil, http.MethodGet, "/ready", http.StatusServiceUnavailable},
		{"unknown route", stubPinger{}, http.MethodGet, "/no-such", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(newEngine(tc.pinger), tc.method, tc.path)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestReadiness_DoesNotLeakErrorText(t *testing.T) {
	w := serve(newEngine(stubPinger{err: errors.New("password authentication failed for user admin")}), http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestReadiness_MethodNotAllowed(t *testing.T) {
	w := serve(newEngine(stubPinger{}), http.MethodPost, "/api/v1/health/ready")
	if w.Code != http.StatusNotFound && w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 404 or 405, got %d", w.Code)
	}
}

func TestStatus_Static(t *testing.T) {
	w := serve(newEngine(stubPinger{err: errors.New("db down")}), http.MethodGet, "/api/v1/status")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"success":true,"data":{"service":"reminder-admin","version":"9.9.9","env":"test","storage_driver":"sqlite"}}`,
		w.Body.String())
}

func TestDocs(t *testing.T) {
	r := newEngine(stubPinger{})

	w := serve(r, http.MethodGet, "/openapi.yaml")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/reminders")

	w = serve(r, http.MethodGet, "/docs")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "swagger-ui")
}

func TestRegister_NilServicesLeaveRoutesUnmounted(t *testing.T) {
	// bare engine without recovery: a nil service reached by a route would panic here
	r := newEngine(stubPinger{})
	for _, path := range []string{
		"/api/v1/reminders",
		"/api/v1/reminders/1",
		"/api/v1/users",
		"/api/v1/users/wa-1",
	} {
		t.Run(path, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			assert.NotPanics(t, func() { w = serve(r, http.MethodGet, path) })
			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/status").Code)
}
