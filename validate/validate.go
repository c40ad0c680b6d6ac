// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board dimensions (odd widths and heights within the supported range)
//   - The player roster (non-empty, unique, within the seat limit)
//   - Target counts against the board's non-corner capacity
//   - Generation: a seeded board is built from each config to prove it plays
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openmaze/shiftingmaze/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, engine-level validation, and a board
// generation dry run.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Generation dry run: seed the config so the run is deterministic and
	// prove the board builds and every token starts on its corner.
	dryRun := config
	if dryRun.Seed == 0 {
		dryRun.Seed = 1
	}
	eng, err := engine.NewEngine(&dryRun)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Board generation failed: %v", err))
		return result
	}

	state := eng.GetState()
	for _, token := range state.Board.Players {
		if len(token.Targets) == 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Player %s received no targets", token.ID))
		}
	}

	// Add informational data
	if result.Valid {
		totalTargets := config.TargetsPerPlayer * len(config.Players)
		seedInfo := "random"
		if config.Seed != 0 {
			seedInfo = fmt.Sprintf("fixed (%d)", config.Seed)
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.Width, config.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Players: %d", len(config.Players)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Targets: %d per player, %d total", config.TargetsPerPlayer, totalTargets))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Seed: %s", seedInfo))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Insertable lines: %d columns, %d rows",
			state.Board.GuidesX(), state.Board.GuidesY()))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
