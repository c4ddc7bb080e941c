package mockapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jpalmerr/eoltracker/internal/poller"
)

func newServer(t *testing.T) (*API, *httptest.Server) {
	t.Helper()
	api := New(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)
	return api, ts
}

func TestAPI_ServesReleaseAndProduct(t *testing.T) {
	_, ts := newServer(t)

	f := poller.NewSlugFetcher(poller.NewClient(""), ts.URL+"/api/v1")
	snap, err := f.Fetch(context.Background(), "nodejs/20")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if snap.Release.Label != "20 (Iron)" || snap.Release.Latest != "20.17.0" {
		t.Errorf("Release = %+v", snap.Release)
	}
	if snap.Product.Label != "Node.js" {
		t.Errorf("Product.Label = %q", snap.Product.Label)
	}
	if os, ok := snap.Release.Custom.First(); !ok || os != "Linux, macOS, Windows" {
		t.Errorf("Custom.First() = %q, %v", os, ok)
	}
}

func TestAPI_Latest(t *testing.T) {
	_, ts := newServer(t)

	f := poller.NewSlugFetcher(poller.NewClient(""), ts.URL+"/api/v1")
	snap, err := f.Fetch(context.Background(), "ubuntu")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if snap.Release.ReleaseDate != "2024-04-25" {
		t.Errorf("latest ReleaseDate = %q, want 2024-04-25", snap.Release.ReleaseDate)
	}
}

func TestAPI_NotFoundAndOutage(t *testing.T) {
	api, ts := newServer(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/products/ubuntu/releases/18.04", http.StatusNotFound},
		{"/api/v1/products/windows", http.StatusNotFound},
		{"/api/v1/products/ubuntu/versions/22.04", http.StatusNotFound},
		{"/api/v1/products/ubuntu/releases/22.04", http.StatusOK},
	}
	for _, tt := range tests {
		resp, err := http.Get(ts.URL + tt.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tt.path, err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.want)
		}
	}

	api.SetDown(true)
	resp, err := http.Get(ts.URL + "/api/v1/products/ubuntu")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status during outage = %d, want 503", resp.StatusCode)
	}
}
