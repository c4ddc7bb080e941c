// Package mockapi is a small stand-in for the endoflife.date v1 API, used by
// the demo programs.
//
// It serves a fixed catalogue of products and releases in the v1 envelope
// shape. When flapping is enabled the API periodically goes into an outage
// and answers 503, so the tracker's failure handling can be watched live.
package mockapi

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

type product struct {
	label   string
	links   map[string]string
	release map[string]map[string]any
}

var catalogue = map[string]product{
	"ubuntu": {
		label: "Ubuntu",
		links: map[string]string{
			"html":          "https://endoflife.date/ubuntu",
			"icon":          "https://cdn.jsdelivr.net/npm/simple-icons/icons/ubuntu.svg",
			"releasePolicy": "https://wiki.ubuntu.com/Releases",
		},
		release: map[string]map[string]any{
			"22.04": {
				"name": "22.04", "label": "22.04 'Jammy Jellyfish'", "releaseDate": "2022-04-21",
				"isLts": true, "isEol": false, "eolFrom": "2027-04-01", "isMaintained": true,
				"latest": map[string]string{"name": "22.04.4"},
			},
			"24.04": {
				"name": "24.04", "label": "24.04 'Noble Numbat'", "releaseDate": "2024-04-25",
				"isLts": true, "isEol": false, "eolFrom": "2029-04-25", "isMaintained": true,
				"latest": map[string]string{"name": "24.04.1"},
			},
		},
	},
	"nodejs": {
		label: "Node.js",
		links: map[string]string{"html": "https://endoflife.date/nodejs"},
		release: map[string]map[string]any{
			"16": {
				"name": "16", "label": "16", "releaseDate": "2021-04-20",
				"isLts": true, "isEol": true, "eolFrom": "2023-09-11", "isMaintained": false,
				"latest": "16.20.2",
			},
			"20": {
				"name": "20", "label": "20 (Iron)", "releaseDate": "2023-04-18",
				"isLts": true, "isEol": false, "eolFrom": "2026-04-30", "isMaintained": true,
				"latest": "20.17.0", "isDiscontinued": false,
				"custom": map[string]string{"supportedOsVersions": "Linux, macOS, Windows"},
			},
		},
	},
}

// API serves the mock catalogue.
type API struct {
	logger *slog.Logger
	flap   bool

	mu           sync.Mutex
	down         bool
	nextChangeAt time.Time
}

// New creates an API. With flap set the API alternates between healthy and
// outage phases of 20-60 seconds each.
func New(logger *slog.Logger, flap bool) *API {
	return &API{
		logger:       logger,
		flap:         flap,
		nextChangeAt: time.Now().Add(nextPhase()),
	}
}

// SetDown forces an outage on or off.
func (a *API) SetDown(down bool) {
	a.mu.Lock()
	a.down = down
	a.mu.Unlock()
}

// ServeHTTP answers /api/v1/products/{product} and
// /api/v1/products/{product}/releases/{release}.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if a.isDown() {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/products/"), "/"), "/")
	p, ok := catalogue[parts[0]]
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 1:
		writeResult(w, map[string]any{"name": parts[0], "label": p.label, "links": p.links})
	case len(parts) == 3 && parts[1] == "releases":
		rel, ok := p.release[parts[2]]
		if parts[2] == "latest" {
			rel, ok = latest(p)
		}
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeResult(w, rel)
	default:
		http.NotFound(w, r)
	}
}

func (a *API) isDown() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.flap && time.Now().After(a.nextChangeAt) {
		a.down = !a.down
		a.nextChangeAt = time.Now().Add(nextPhase())
		a.logger.Info("mock API phase change", "down", a.down)
	}
	return a.down
}

// latest returns the release with the newest release date.
func latest(p product) (map[string]any, bool) {
	var best map[string]any
	for _, rel := range p.release {
		if best == nil || rel["releaseDate"].(string) > best["releaseDate"].(string) {
			best = rel
		}
	}
	return best, best != nil
}

func nextPhase() time.Duration {
	return time.Duration(20+rand.Intn(41)) * time.Second
}

func writeResult(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"schema_version": "1.0.0", "result": result})
}
