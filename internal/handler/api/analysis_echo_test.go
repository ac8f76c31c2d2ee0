package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"MacroPull/internal/domain/models"
	"MacroPull/internal/report"
	svccache "MacroPull/internal/service/cache"
	xlogger "MacroPull/pkg/logger"

	"github.com/labstack/echo/v4"
)

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func testBundle() *models.AnalysisBundle {
	return &models.AnalysisBundle{
		GeneratedAt: time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
		Classifications: []models.Classification{
			{
				Indicator:   models.Indicator{ID: "UNRATE", Name: "Unemployment Rate"},
				Label:       models.TrendFlat,
				LatestValue: 4.1,
				LatestDate:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		Sentiment: models.Sentiment{Mood: models.MoodNeutral, Risk: models.RiskMedium},
	}
}

func newTestHandler(t *testing.T, seed *models.AnalysisBundle) (*AnalysisEchoHandler, *echo.Echo) {
	t.Helper()
	store := svccache.NewBundleStore(nil, time.Hour)
	if seed != nil {
		if err := store.SetLatest(context.Background(), seed); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	h := NewAnalysisEchoHandler(testLogger(t), store,
		report.NewAssembler(t.TempDir(), "economic_report"), nil, nil, nil)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func bodyStatus(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
	return body.Status
}

func TestReportBeforeFirstRun(t *testing.T) {
	_, e := newTestHandler(t, nil)
	rec := do(e, http.MethodGet, "/api/report")
	if bodyStatus(t, rec) != http.StatusNotFound {
		t.Fatalf("expected 404 body status, got %s", rec.Body.String())
	}
}

func TestReportReturnsLatestBundle(t *testing.T) {
	_, e := newTestHandler(t, testBundle())
	rec := do(e, http.MethodGet, "/api/report")
	if rec.Code != http.StatusOK || bodyStatus(t, rec) != http.StatusOK {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"UNRATE"`) {
		t.Fatalf("bundle payload missing: %s", rec.Body.String())
	}
}

func TestReportTextRendersReport(t *testing.T) {
	_, e := newTestHandler(t, testBundle())
	rec := do(e, http.MethodGet, "/api/report/text")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected code %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "US ECONOMIC DATA ANALYSIS REPORT") {
		t.Fatalf("text report missing header:\n%s", rec.Body.String())
	}
}

func TestClassificationRequiresIndicator(t *testing.T) {
	_, e := newTestHandler(t, testBundle())
	rec := do(e, http.MethodGet, "/api/classifications")
	if bodyStatus(t, rec) != http.StatusBadRequest {
		t.Fatalf("expected validation error, got %s", rec.Body.String())
	}
}

func TestClassificationLookup(t *testing.T) {
	_, e := newTestHandler(t, testBundle())
	rec := do(e, http.MethodGet, "/api/classifications?indicator=UNRATE")
	if bodyStatus(t, rec) != http.StatusOK {
		t.Fatalf("lookup failed: %s", rec.Body.String())
	}
	rec = do(e, http.MethodGet, "/api/classifications?indicator=GDPC1")
	if bodyStatus(t, rec) != http.StatusNotFound {
		t.Fatalf("expected miss for GDPC1, got %s", rec.Body.String())
	}
}
