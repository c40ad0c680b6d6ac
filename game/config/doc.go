// Package config provides configuration management for the shifting maze game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Board dimensions (odd widths and heights, 3 to 31)
//   - The player roster, up to four identities seated at the corners
//   - Targets dealt per player
//   - An optional seed for reproducible board generation
//
// Available Configurations:
//
// The shipped configs directory covers the common setups:
//   - classic: 7x7 board for two players, four targets each
//   - grand_melee: larger rectangular board seating four players
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Odd board dimensions within the supported range
//   - A non-empty roster of unique players within the seat limit
//   - A target count that fits on the board's non-corner tiles
package config
