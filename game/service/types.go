package service

import (
	"time"

	"github.com/openmaze/shiftingmaze/game/engine"
)

// SessionInfo provides information about a game session.
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// CommandResult reports the outcome of one applied command. Dirty mirrors
// the engine's flag: false means the command was ignored and nothing needs
// redrawing or broadcasting.
type CommandResult struct {
	Dirty        bool              `json:"dirty"`
	GameState    *engine.GameState `json:"game_state"`
	ActivePlayer engine.PlayerID   `json:"active_player"`
	Phase        engine.Phase      `json:"phase"`
	GameOver     bool              `json:"game_over"`
	Winner       engine.PlayerID   `json:"winner,omitempty"`
	Events       []GameEvent       `json:"events,omitempty"`
}

// GameEvent represents an event that occurred while applying a command.
type GameEvent struct {
	Type      string          `json:"type"` // "guide_moved", "tile_rotated", "tile_inserted", "token_moved", "target_reached", "turn_passed", "victory"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Player    engine.PlayerID `json:"player,omitempty"`
}

// ConfigInfo provides information about a game configuration.
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // identifier to use for session creation
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Players     int    `json:"players"`
}
