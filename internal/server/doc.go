// Package server provides the HTTP surface for the tracker.
//
// It serves the embedded dashboard, a JSON API over entity states and
// notifications, a forced-refresh endpoint and a Server-Sent Events stream,
// all behind a chi router with request ID, real IP, request logging and
// panic recovery middleware.
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
//
// Users of the eoltracker library should not need to interact with this
// package directly. The server is started by [eoltracker.Tracker.Start].
package server
