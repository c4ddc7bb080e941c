package eoltracker

import (
	"strings"
	"testing"
	"time"
)

const ubuntuURI = "https://endoflife.date/api/v1/products/ubuntu/releases/22.04"

func TestNewEntry_Valid(t *testing.T) {
	e, err := NewEntry(ubuntuURI)
	if err != nil {
		t.Fatalf("NewEntry() error = %v", err)
	}

	if e.Identifier() != ubuntuURI {
		t.Errorf("Identifier() = %q", e.Identifier())
	}
	if e.ReleaseURI() != ubuntuURI {
		t.Errorf("ReleaseURI() = %q", e.ReleaseURI())
	}
	if e.SlugMode() {
		t.Error("SlugMode() = true, want false")
	}
	if e.FetchTimeout() != 10*time.Second {
		t.Errorf("FetchTimeout() = %v, want 10s", e.FetchTimeout())
	}
	if e.ID() == "" {
		t.Error("ID() is empty")
	}
}

func TestNewEntry_DeterministicID(t *testing.T) {
	a, _ := NewEntry(ubuntuURI)
	b, _ := NewEntry("  " + ubuntuURI + " ")
	c, _ := NewEntry("https://endoflife.date/api/v1/products/ubuntu/releases/24.04")

	if a.ID() != b.ID() {
		t.Errorf("ID() differs for the same identifier: %q vs %q", a.ID(), b.ID())
	}
	if a.ID() == c.ID() {
		t.Error("ID() is the same for different identifiers")
	}
}

func TestNewEntry_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		opts       []EntryOption
	}{
		{name: "empty", identifier: "  "},
		{name: "no scheme", identifier: "endoflife.date/api/v1/products/ubuntu/releases/22.04"},
		{name: "one segment", identifier: "https://endoflife.date/ubuntu"},
		{name: "bad slug", identifier: "a/b/c", opts: []EntryOption{WithSlugMode()}},
		{name: "empty entry id", identifier: ubuntuURI, opts: []EntryOption{WithEntryID(" ")}},
		{name: "bad base url", identifier: "ubuntu", opts: []EntryOption{WithSlugMode(), WithBaseURL("/relative")}},
		{name: "zero timeout", identifier: ubuntuURI, opts: []EntryOption{WithFetchTimeout(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEntry(tt.identifier, tt.opts...); err == nil {
				t.Errorf("NewEntry(%q) error = nil, want error", tt.identifier)
			}
		})
	}
}

func TestNewEntry_SlugMode(t *testing.T) {
	e, err := NewEntry("Ubuntu/22.04",
		WithSlugMode(),
		WithBaseURL("https://mirror.example.com/api/v1/"),
		WithEntryID("ubuntu-2204"),
		WithFetchTimeout(3*time.Second),
	)
	if err != nil {
		t.Fatalf("NewEntry() error = %v", err)
	}

	if e.ID() != "ubuntu-2204" {
		t.Errorf("ID() = %q", e.ID())
	}
	if e.BaseURL() != "https://mirror.example.com/api/v1" {
		t.Errorf("BaseURL() = %q", e.BaseURL())
	}
	want := "https://mirror.example.com/api/v1/products/ubuntu/releases/22.04"
	if e.ReleaseURI() != want {
		t.Errorf("ReleaseURI() = %q, want %q", e.ReleaseURI(), want)
	}
	if e.FetchTimeout() != 3*time.Second {
		t.Errorf("FetchTimeout() = %v", e.FetchTimeout())
	}
}

func TestNewEntry_SlugDefaultsToLatest(t *testing.T) {
	e, err := NewEntry("python", WithSlugMode())
	if err != nil {
		t.Fatalf("NewEntry() error = %v", err)
	}
	if !strings.HasSuffix(e.ReleaseURI(), "/products/python/releases/latest") {
		t.Errorf("ReleaseURI() = %q", e.ReleaseURI())
	}
}
