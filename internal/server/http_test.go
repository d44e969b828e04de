package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"advanced-melee/internal/storage"
	"advanced-melee/pkg/api"
	"advanced-melee/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type fakeReports struct {
	saved []api.MissingModRequest
	fail  bool
}

func (f *fakeReports) SaveMissingMods(ctx context.Context, reports []api.MissingModRequest) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.saved = append(f.saved, reports...)
	return nil
}

func (f *fakeReports) MissingMods(ctx context.Context) ([]storage.MissingModReport, error) {
	return nil, nil
}

func TestReportMissingMods(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		body      string
		fail      bool
		wantCode  int
		wantBody  string
		wantSaved int
	}{
		{"Valid list with null", http.MethodPost, `[{"modId":"swords","modName":"Swords","weaponDefs":["katana"]}, null]`, false, http.StatusOK, "", 1},
		{"Empty list", http.MethodPost, `[]`, false, http.StatusOK, "", 0},
		{"Broken json", http.MethodPost, `[{`, false, http.StatusBadRequest, "Error recording data", 0},
		{"Missing mod id", http.MethodPost, `[{"modName":"Swords"}]`, false, http.StatusBadRequest, "Error recording data", 0},
		{"Store failure", http.MethodPost, `[{"modId":"swords"}]`, true, http.StatusBadRequest, "Error recording data", 0},
		{"Wrong method", http.MethodGet, ``, false, http.StatusMethodNotAllowed, "method not allowed", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeReports{fail: tt.fail}
			srv := New(nil, store, "0")

			req := httptest.NewRequest(tt.method, "/api/modreporting/report-missing-mods", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Routes().ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if body := strings.TrimSpace(rec.Body.String()); body != tt.wantBody {
				t.Errorf("Body = %q, want %q", body, tt.wantBody)
			}
			if len(store.saved) != tt.wantSaved {
				t.Errorf("Saved %d reports, want %d", len(store.saved), tt.wantSaved)
			}
		})
	}
}

func TestReportingHealthCheck(t *testing.T) {
	srv := New(nil, &fakeReports{}, "0")

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/api/modreporting/health-check", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("HEAD health-check = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/modreporting/health-check", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST health-check = %d", rec.Code)
	}
}

func TestHealthAndVersion(t *testing.T) {
	srv := New(nil, &fakeReports{}, "0")

	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("/health = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	if !strings.Contains(rec.Body.String(), `"service":"advanced-melee"`) {
		t.Errorf("/version body = %s", rec.Body.String())
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}
