// Package engine implements the core logic of the shifting-maze board game.
//
// Players navigate a grid of rotatable, connector-bearing tiles. Each turn
// the active player first reshapes the maze by inserting the spare "loose"
// tile into a row or column, shoving the whole line one step and carrying
// any tokens on it (with wraparound at the edges), then moves their token
// to any cell reachable through the tile connectors. Reaching the head of
// the player's target queue retires it; an empty queue wins the game.
//
// Core types:
//
// Tile models the connector layout (shape plus orientation), Board owns the
// grid, the loose tile and the player tokens, NextGuidePosition is the pure
// insert-guide navigation function, and GameEngine is the turn controller
// that composes them into the legal per-turn protocol.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultGameConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	dirty := eng.Apply(engine.Command{
//		Actor:     "player1",
//		Kind:      engine.CommandMove,
//		Direction: engine.East,
//	})
//	state := eng.GetState()
//
// The engine is a pure, single-threaded state machine: it performs no I/O,
// holds no locks, and every operation completes in O(board size) or better.
// Apply reports whether the command changed anything, letting hosts skip
// redundant redraws and broadcasts. The full state is a plain serializable
// value; Snapshot and SetState support hosts that reconcile by replacing
// the entire state ("last full-state write wins").
//
// Failure semantics: illegal inputs (wrong identity, unreachable cell) are
// silently ignored, while genuine precondition violations (reaching into an
// empty target queue, corrupt direction values) panic, since the turn
// controller's own gating makes them unreachable in normal play.
package engine
