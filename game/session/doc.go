// Package session provides session management for the shifting maze game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Optional file-based persistence of full game snapshots
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// SessionPersistence is the storage interface; FilePersistence implements it
// with one JSON file per session under a sessions directory.
//
// Session Identifiers:
//
// Sessions are identified by UUIDs generated at creation; callers may also
// supply their own IDs.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Persistence:
//
// With a persistence backend configured, every dirty command saves the full
// game snapshot, LoadPersistedSessions restores sessions at startup, and
// CleanupExpiredSessions may evict idle sessions from memory without losing
// them: the next Get lazily reloads from storage.
package session
