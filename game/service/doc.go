// Package service provides the business logic layer for the shifting maze game.
//
// The service package implements:
//   - Multi-session game management
//   - Configuration management and loading
//   - Command processing with per-command event extraction
//   - Session lifecycle management and persistence triggers
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket) and the
// game engine, providing session isolation, configuration management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state. State returned to callers is always an
// engine snapshot, never the live state, so transports can serialize it
// without racing the engine.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Apply commands on behalf of players
//	result, err := gameService.ApplyCommand(ctx, sessionInfo.ID, engine.Command{
//		Actor:     "player1",
//		Kind:      engine.CommandMove,
//		Direction: engine.East,
//	})
//
// Session Management:
//
// Sessions are identified by unique IDs and maintain independent game state.
// Multiple sessions can run concurrently with different configurations.
// Sessions track creation time and last access time, and are persisted after
// every state-changing command when the session manager is configured with a
// persistence backend.
package service
