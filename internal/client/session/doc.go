// Package session owns the durable representation of "who is logged in":
// the user profile and the bearer credential issued at sign-in, persisted
// together in the client's local database, plus the in-memory State that the
// rest of the application observes.
//
// # Invariant
//
// Profile and credential are always both present or both absent. Persistence
// writes both fields inside a single transaction, and a persisted record
// missing either field is treated as "no session" rather than an error.
//
// State transitions are made by the auth service; consumers read Current()
// or subscribe to changes.
package session
