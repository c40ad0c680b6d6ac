package engine

// PlayerID identifies a player (or a delegated child identity).
type PlayerID string

// TargetID identifies a target marker. Zero means "no marker".
type TargetID int

// Phase is the turn controller's current phase.
type Phase string

const (
	// PhaseInsert is the phase in which the active player positions, rotates
	// and inserts the loose tile.
	PhaseInsert Phase = "insert"
	// PhaseMove is the phase in which the active player moves their token.
	PhaseMove Phase = "move"
)

// CommandKind classifies an input command.
type CommandKind string

const (
	CommandMove    CommandKind = "move"    // directional input, carries a Direction
	CommandRotate  CommandKind = "rotate"  // rotate the loose tile
	CommandConfirm CommandKind = "confirm" // confirm the current selection
)

const (
	// MaxPlayers is the hard player cap; tokens start on the four corners.
	MaxPlayers = 4

	// MinBoardSize and MaxBoardSize bound the board dimensions.
	MinBoardSize = 3
	MaxBoardSize = 31

	// DefaultBoardSize is the classic board edge length.
	DefaultBoardSize = 7

	// DefaultTargetsPerPlayer is the number of targets dealt to each player
	// in the default configuration.
	DefaultTargetsPerPlayer = 4
)

// Position represents a cell coordinate on the board grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Command is one discrete input to the turn controller, tagged with the
// acting identity. Direction is only meaningful for CommandMove.
type Command struct {
	Actor     PlayerID    `json:"actor"`
	Kind      CommandKind `json:"kind"`
	Direction Direction   `json:"direction,omitempty"`
}
