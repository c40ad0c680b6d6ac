package engine

import (
	"fmt"
)

// GameConfig describes one game setup, loaded from JSON files by the config
// manager or built in code.
type GameConfig struct {
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Width            int        `json:"width"`
	Height           int        `json:"height"`
	Players          []PlayerID `json:"players"`
	TargetsPerPlayer int        `json:"targets_per_player"`

	// Seed fixes board generation for reproducible games; zero draws a
	// time-based seed.
	Seed int64 `json:"seed,omitempty"`
}

// DefaultGameConfig returns the classic two-player 7x7 setup.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:             "Classic Duel",
		Description:      "Classic 7x7 shifting maze for two players",
		Width:            DefaultBoardSize,
		Height:           DefaultBoardSize,
		Players:          []PlayerID{"player1", "player2"},
		TargetsPerPlayer: DefaultTargetsPerPlayer,
	}
}

// ValidateGameConfig validates a game configuration for correctness and
// playability.
func ValidateGameConfig(config *GameConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.Width < MinBoardSize || config.Width > MaxBoardSize {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Width)
	}
	if config.Height < MinBoardSize || config.Height > MaxBoardSize {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Height)
	}
	// Even dimensions would put a corner tile on an insertable line.
	if config.Width%2 == 0 {
		return fmt.Errorf("config validation: width must be odd, got %d", config.Width)
	}
	if config.Height%2 == 0 {
		return fmt.Errorf("config validation: height must be odd, got %d", config.Height)
	}

	if len(config.Players) == 0 {
		return fmt.Errorf("config validation: at least one player is required")
	}
	if len(config.Players) > MaxPlayers {
		return fmt.Errorf("config validation: %w: got %d, max %d", ErrTooManyPlayers, len(config.Players), MaxPlayers)
	}
	seen := make(map[PlayerID]bool, len(config.Players))
	for _, id := range config.Players {
		if id == "" {
			return fmt.Errorf("config validation: player ids must be non-empty")
		}
		if seen[id] {
			return fmt.Errorf("config validation: duplicate player id %q", string(id))
		}
		seen[id] = true
	}

	if config.TargetsPerPlayer < 1 {
		return fmt.Errorf("config validation: targets_per_player must be at least 1, got %d", config.TargetsPerPlayer)
	}
	totalTargets := config.TargetsPerPlayer * len(config.Players)
	cells := config.Width*config.Height - MaxPlayers
	if totalTargets > cells {
		return fmt.Errorf("config validation: %d targets do not fit %d non-corner cells", totalTargets, cells)
	}

	return nil
}
