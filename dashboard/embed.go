// Package dashboard provides the embedded web UI for the EOL tracker.
//
// The page lists the release date sensor with its attributes and the four
// status flags, follows live updates over Server-Sent Events and shows
// failure notifications with a dismiss button.
package dashboard

import "embed"

// Assets holds the dashboard files:
//
//	assets/
//	  index.html    - page with inline CSS and JavaScript; "{{.Title}}" is
//	                  replaced with the configured title when served
//
//go:embed assets/*
var Assets embed.FS
