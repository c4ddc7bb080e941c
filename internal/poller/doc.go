// Package poller fetches endoflife.date data on a schedule.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with pooling, HTTP/2 and size limits
//   - [Fetcher]: turns an identifier into one [eol.Snapshot] (release + product)
//   - [Coordinator]: shared cache with a single ticker, singleflight-coalesced
//     refreshes, listeners and failure notifications
//
// Users of the eoltracker library should not need to interact with this
// package directly. Configuration is done through the root package.
package poller
