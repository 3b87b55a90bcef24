package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHasEmbeddedFiles(t *testing.T) {
	if !HasEmbeddedFiles() {
		t.Fatal("expected embedded index.html")
	}
}

func TestRegisterStaticRoutes(t *testing.T) {
	e := echo.New()
	e.GET("/api/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if err := RegisterStaticRoutes(e); err != nil {
		t.Fatalf("RegisterStaticRoutes: %v", err)
	}

	tests := []struct {
		path       string
		wantStatus int
		wantPage   bool
	}{
		{"/", http.StatusOK, true},
		{"/index.html", http.StatusOK, true},
		{"/some/frontend/route", http.StatusOK, true},
		{"/api/health", http.StatusOK, false},
		{"/api/unknown", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			isPage := strings.Contains(rec.Body.String(), "View Compressed Files")
			if isPage != tt.wantPage {
				t.Errorf("expected page=%v, got %v", tt.wantPage, isPage)
			}
		})
	}
}
