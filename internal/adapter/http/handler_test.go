package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paylite-backend/internal/domain/apperr"
	"paylite-backend/internal/infrastructure/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

func TestHealth_OK(t *testing.T) {
	e := echo.New()
	h := NewHandler(Check{Name: "db", Ping: func(context.Context) error { return nil }})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	before := time.Now().UTC()
	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		t.Fatalf("content type = %q", ct)
	}

	var body struct {
		Status       string            `json:"status"`
		Time         string            `json:"time"`
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Status != "ok" || body.Dependencies["db"] != "ok" {
		t.Fatalf("body = %+v", body)
	}
	ts, err := time.Parse(time.RFC3339Nano, body.Time)
	if err != nil || ts.Location() != time.UTC {
		t.Fatalf("time %q is not RFC3339Nano UTC (err=%v)", body.Time, err)
	}
	if ts.Before(before.Add(-time.Second)) || ts.After(time.Now().Add(time.Second)) {
		t.Fatalf("stale timestamp %v", ts)
	}
}

func TestHealth_DegradedWhenDependencyDown(t *testing.T) {
	e := echo.New()
	h := NewHandler(
		Check{Name: "db", Ping: func(context.Context) error { return nil }},
		Check{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }},
	)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	var body struct {
		Status       string            `json:"status"`
		Dependencies map[string]string `json:"dependencies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Status != "degraded" || body.Dependencies["db"] != "ok" || body.Dependencies["redis"] != "connection refused" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewCollector(reg).RecordPayment("Success", time.Millisecond)

	e := echo.New()
	e.GET("/metrics", Metrics(reg))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "paylite_") {
		t.Fatalf("no paylite metrics in scrape:\n%s", rec.Body.String())
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.Validation("bad"), http.StatusUnprocessableEntity},
		{apperr.Kind(apperr.ErrNotFound, "gone"), http.StatusNotFound},
		{apperr.Kind(apperr.ErrAlreadySettled, "paid"), http.StatusConflict},
		{apperr.Kind(apperr.ErrConflict, "dup"), http.StatusConflict},
		{apperr.Kind(apperr.ErrUnauthorized, "who"), http.StatusUnauthorized},
		{apperr.Kind(apperr.ErrForbidden, "no"), http.StatusForbidden},
		{apperr.Storage("save", errors.New("disk")), http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Fatalf("statusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError_HidesStorageDetail(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	_ = writeError(c, apperr.Storage("loans.save", errors.New("dial tcp 10.0.0.5:3306")))
	if rec.Code != http.StatusServiceUnavailable || strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}
