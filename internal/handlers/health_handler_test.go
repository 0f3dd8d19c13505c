package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
	}{
		{"no_database", nil, http.StatusOK},
		{"database_up", pingerFunc(func(context.Context) error { return nil }), http.StatusOK},
		{"database_down", pingerFunc(func(context.Context) error { return errors.New("refused") }), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db)
			r := gin.New()
			r.GET("/", h.Root)
			r.GET("/api/health", h.Health)

			rec := doRequest(r, http.MethodGet, "/api/health", "")
			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			rec = doRequest(r, http.MethodGet, "/", "")
			if parseJSON(t, rec)["status"] != "ok" {
				t.Errorf("expected root status ok, got %s", rec.Body.String())
			}
		})
	}
}
