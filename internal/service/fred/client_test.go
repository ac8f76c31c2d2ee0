package fred

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestFetchParsesAndOrdersObservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("series_id") != "UNRATE" || q.Get("api_key") != "k" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("sort_order") != "desc" || q.Get("limit") != "12" {
			t.Errorf("unexpected paging params %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"observations":[
			{"date":"2025-05-01","value":"4.2"},
			{"date":"2025-04-01","value":"."},
			{"date":"2025-03-01","value":"4.1"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, 365, WithClock(fixedClock))
	obs, err := c.Fetch(context.Background(), "UNRATE", 12)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(obs) != 2 {
		t.Fatalf("expected 2 usable observations, got %d", len(obs))
	}
	if !obs[0].Date.Before(obs[1].Date) {
		t.Fatalf("observations not oldest first: %+v", obs)
	}
	if obs[1].Value != 4.2 {
		t.Fatalf("unexpected latest value %v", obs[1].Value)
	}
}

func TestFetchHTTPErrorIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, 365, WithClock(fixedClock))
	_, err := c.Fetch(context.Background(), "UNRATE", 12)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.SeriesID != "UNRATE" {
		t.Fatalf("wrong series on error: %s", fe.SeriesID)
	}
}

func TestFetchEmptyPayloadIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"observations":[{"date":"2025-05-01","value":"."}]}`))
	}))
	defer srv.Close()

	c := NewClient("k", srv.URL, 365, WithClock(fixedClock))
	_, err := c.Fetch(context.Background(), "GDPC1", 12)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError for all-missing payload, got %v", err)
	}
}

func TestFetchUnreachableHostIsFetchError(t *testing.T) {
	c := NewClient("k", "http://127.0.0.1:1", 365,
		WithClock(fixedClock), WithTimeout(200*time.Millisecond))
	_, err := c.Fetch(context.Background(), "CPIAUCSL", 12)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
}
