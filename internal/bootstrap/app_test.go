package bootstrap_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cv-backend/internal/bootstrap"
	"cv-backend/internal/jobs"
	"cv-backend/internal/shared/config"
	"cv-backend/internal/shared/storage/db"
)

func TestBuildFallsBackToMemoryInDev(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{Env: "dev", LocalStoreDir: t.TempDir()})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	if _, ok := app.JobsRepo.(*jobs.MemoryRepo); !ok {
		t.Fatalf("expected memory repo, got %T", app.JobsRepo)
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"database":"memory"`) {
		t.Fatalf("unexpected health %d %s", resp.Code, resp.Body.String())
	}
}

func TestBuildRequiresDatabaseInProduction(t *testing.T) {
	_, err := bootstrap.Build(config.Config{Env: "production", LocalStoreDir: t.TempDir()})
	if err == nil {
		t.Fatalf("expected error without database settings")
	}
}

func TestBuildWithSQLiteRunsMigrations(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Env:           "production",
		DBDriver:      "sqlite",
		DBName:        filepath.Join(t.TempDir(), "cv.db"),
		DBAutoMigrate: true,
		LocalStoreDir: t.TempDir(),
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	defer app.Close()

	if app.Dialect != db.SQLite {
		t.Fatalf("expected sqlite dialect, got %s", app.Dialect)
	}

	body := `{"company":"Acme","title":"Dev","description":"Built APIs","startDate":"2021-03-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cv", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	location := resp.Header().Get("Location")
	if location != "/api/cv/1" {
		t.Fatalf("unexpected location %q", location)
	}

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, location, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"start_date":"2021-03-01"`) ||
		!strings.Contains(resp.Body.String(), `"end_date":"`+jobs.OngoingPlaceholder+`"`) {
		t.Fatalf("unexpected row %s", resp.Body.String())
	}
}

func TestDSNPrefersDatabaseURL(t *testing.T) {
	dsn, err := bootstrap.DSN(config.Config{DatabaseURL: "postgres://u@h/db", DBName: "ignored"}, db.Postgres)
	if err != nil || dsn != "postgres://u@h/db" {
		t.Fatalf("unexpected dsn %q err=%v", dsn, err)
	}
}
