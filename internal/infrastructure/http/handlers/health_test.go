package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serve(t *testing.T, h echo.HandlerFunc) (*httptest.ResponseRecorder, readinessResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp readinessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestLiveness(t *testing.T) {
	rec, _ := serve(t, NewHealthHandler().Liveness)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness_AllHealthy(t *testing.T) {
	ok := func(context.Context) error { return nil }
	rec, resp := serve(t, NewReadinessHandler(map[string]Check{"mongodb": ok, "redis": ok}).Readiness)

	if rec.Code != http.StatusOK || resp.Status != "ok" {
		t.Fatalf("expected ready, got %d %+v", rec.Code, resp)
	}
	if len(resp.Dependencies) != 2 {
		t.Fatalf("expected both dependencies reported, got %+v", resp.Dependencies)
	}
}

func TestReadiness_Degraded(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }
	rec, resp := serve(t, NewReadinessHandler(map[string]Check{"mongodb": ok, "redis": down}).Readiness)

	if rec.Code != http.StatusServiceUnavailable || resp.Status != "degraded" {
		t.Fatalf("expected degraded, got %d %+v", rec.Code, resp)
	}
	if got := resp.Dependencies["redis"]; got.Status != "unhealthy" || got.Error != "connection refused" {
		t.Fatalf("unexpected redis status: %+v", got)
	}
	if resp.Dependencies["mongodb"].Status != "ok" {
		t.Fatalf("healthy dependency misreported: %+v", resp.Dependencies["mongodb"])
	}
}
