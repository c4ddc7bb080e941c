// Package store holds the latest entity states and fans out updates.
//
// The main components are:
//
//   - [Store]: Interface defining storage and subscription operations
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//   - [EntityState]: JSON view of one sensor entity
//
// Subscribers receive updates via channels with non-blocking sends (slow
// subscribers will miss updates rather than block the refresh path).
//
// Users of the eoltracker library should not need to interact with this
// package directly.
package store
