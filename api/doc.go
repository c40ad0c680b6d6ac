// Package api provides HTTP REST API handlers for the shifting maze game.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - Full-state read and replace for snapshot-based hosts
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get game state snapshot
//   - PUT /api/sessions/{id}/state - Replace game state wholesale
//   - POST /api/sessions/{id}/command - Apply one player command
//   - POST /api/sessions/{id}/delegates - Register a delegate identity
//   - POST /api/sessions/{id}/reset - Regenerate the game
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a new configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Commands are sent as POST with a
// JSON body:
//
//	{
//	  "actor": "player1",
//	  "kind": "move|rotate|confirm",
//	  "direction": "north|east|south|west" // for kind "move"
//	}
//
// The command response carries a dirty flag, the resulting state snapshot,
// and the events extracted from the transition. Ignored commands return
// dirty=false with the unchanged state, never an HTTP error.
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
