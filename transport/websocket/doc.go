// Package websocket provides WebSocket transport for the shifting maze game.
//
// The websocket package implements:
//   - Real-time state streaming to session watchers
//   - Session-aware WebSocket connections
//   - Automatic snapshot broadcasting after state changes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup. All access to the
// session registry happens on the hub's Run goroutine; broadcasts from other
// goroutines go through the hub's channel.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//
//	{
//	  "session_id": "abc1",
//	  "event": "state_update",
//	  "game_state": { ... full game snapshot ... }
//	}
//
// The socket is a one-way feed: clients issue commands over the REST API
// and receive the complete game snapshot whenever a command changed state.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a state-changing command
//	hub.BroadcastToSession(sessionID, engineSnapshot)
//
// Connection Lifecycle:
//
// 1. Client connects with session ID
// 2. Connection registered with hub
// 3. Client receives snapshots as the game advances
// 4. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
