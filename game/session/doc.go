// Package session provides session management for Solitario Napoletano.
//
// The session package implements:
//   - Thread-safe in-memory session storage and retrieval
//   - Unique 4-character session ID generation
//   - Expiry of idle sessions
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns its own engine.GameEngine, so boards in different
// sessions never share state.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session with a reproducible first deal
//	sess, err := manager.Create("", config, engine.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Drop sessions idle for a day, checking every ten minutes
//	go manager.RunCleanup(ctx, 10*time.Minute, 24*time.Hour)
//
// Sessions are not persisted. Restarting the process discards every game.
package session
