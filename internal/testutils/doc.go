// Package testutils provides shared helpers for tests: an isolated in-memory
// database with the production schema, fixtures for users and posts, a
// memory-backed slog handler and small HTTP helpers.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutils.NewTestDB(t)
//	    user := testutils.MustCreateUser(t, db, "a@example.com")
//	    post := testutils.MustCreatePost(t, db, user.ID, "T", "C")
//	    ...
//	}
//
// Every call to NewTestDB returns a fresh database, so tests may run in
// parallel without sharing state.
package testutils
