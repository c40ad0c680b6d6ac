package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// GameState is the complete, serializable game state: the board plus the
// turn controller's bookkeeping. It is the unit of snapshot and replace for
// hosts whose reconciliation model is "last full-state write wins".
type GameState struct {
	Board *Board `json:"board"`

	// Phase is the current turn phase. TurnOrder rotates head-to-tail
	// after every completed turn; the head is the active player.
	Phase     Phase      `json:"phase"`
	TurnOrder []PlayerID `json:"turn_order"`

	// Cursor is the cell highlighted during the move phase.
	Cursor Position `json:"cursor"`

	// Delegates maps a child identity to the player it acts for, modeling
	// shared-control accounts.
	Delegates map[PlayerID]PlayerID `json:"delegates,omitempty"`

	GameOver   bool     `json:"game_over"`
	Winner     PlayerID `json:"winner,omitempty"`
	ConfigName string   `json:"config_name,omitempty"`
}

// GameEngine drives one game: it owns the state and enforces the per-turn
// protocol. It is a synchronous state machine with no internal locking;
// concurrent hosts must serialize access.
type GameEngine struct {
	state  *GameState
	config *GameConfig
	rng    *rand.Rand
}

// NewEngine creates a new game engine with the provided configuration.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &GameEngine{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
	if err := e.initState(); err != nil {
		return nil, err
	}
	return e, nil
}

// initState generates a fresh board and turn order from the configuration.
func (e *GameEngine) initState() error {
	board, err := NewBoard(e.config, e.rng)
	if err != nil {
		return err
	}

	order := make([]PlayerID, len(board.Players))
	for i, token := range board.Players {
		order[i] = token.ID
	}

	e.state = &GameState{
		Board:      board,
		Phase:      PhaseInsert,
		TurnOrder:  order,
		Cursor:     board.Players[0].Position,
		ConfigName: e.config.Name,
	}
	return nil
}

// GetState returns the live game state. Callers that need an isolated copy
// use Snapshot instead.
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Snapshot returns a deep copy of the game state, safe to serialize or hand
// to another goroutine while the engine keeps mutating.
func (e *GameEngine) Snapshot() *GameState {
	return e.state.Clone()
}

// SetState replaces the engine's state wholesale, e.g. with a snapshot
// received from a host peer. Snapshots arrive over the wire, so the state
// is validated for structural consistency before it goes live; a state the
// controller could never reach is rejected, never adopted.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if err := validateState(state); err != nil {
		return err
	}
	e.state = state
	return nil
}

// validateState checks the invariants every command handler relies on:
// the tile grid matches the declared dimensions, every turn-order id has a
// token, and all positions are on the board.
func validateState(s *GameState) error {
	if s.Board == nil {
		return fmt.Errorf("state board cannot be nil")
	}
	b := s.Board
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("board dimensions %dx%d are invalid", b.Width, b.Height)
	}
	if len(b.Tiles) != b.Height {
		return fmt.Errorf("board has %d tile rows, want %d", len(b.Tiles), b.Height)
	}
	for row := range b.Tiles {
		if len(b.Tiles[row]) != b.Width {
			return fmt.Errorf("board row %d has %d tiles, want %d", row, len(b.Tiles[row]), b.Width)
		}
	}

	switch s.Phase {
	case PhaseInsert, PhaseMove:
	default:
		return fmt.Errorf("unknown phase %q", string(s.Phase))
	}

	if len(s.TurnOrder) == 0 {
		return fmt.Errorf("state turn order cannot be empty")
	}
	for _, id := range s.TurnOrder {
		if b.Token(id) == nil {
			return fmt.Errorf("turn order references unknown player %q", string(id))
		}
	}
	for _, token := range b.Players {
		if !b.InBounds(token.Position) {
			return fmt.Errorf("player %q is off the board at (%d,%d)",
				string(token.ID), token.Position.Row, token.Position.Col)
		}
	}
	if !b.InBounds(s.Cursor) {
		return fmt.Errorf("cursor is off the board at (%d,%d)", s.Cursor.Row, s.Cursor.Col)
	}

	if lp := b.LoosePosition; lp != nil {
		var guides int
		switch lp.Edge {
		case North, South:
			guides = b.GuidesX()
		case East, West:
			guides = b.GuidesY()
		default:
			return fmt.Errorf("loose tile guide has invalid edge %q", string(lp.Edge))
		}
		if lp.Index < 0 || lp.Index >= guides {
			return fmt.Errorf("loose tile guide index %d out of range for edge %s", lp.Index, lp.Edge)
		}
	}
	return nil
}

// Reset regenerates the game from its configuration. The generation RNG
// continues from its current stream, so consecutive resets produce distinct
// boards unless a fresh engine is built from a seeded config.
func (e *GameEngine) Reset() (*GameState, error) {
	if err := e.initState(); err != nil {
		return nil, err
	}
	return e.state, nil
}

// GetConfig returns the engine's configuration.
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// ActivePlayer returns the player whose turn it is.
func (e *GameEngine) ActivePlayer() PlayerID {
	return e.state.TurnOrder[0]
}

// RegisterDelegate records that commands from child act for parent.
func (e *GameEngine) RegisterDelegate(child, parent PlayerID) {
	if e.state.Delegates == nil {
		e.state.Delegates = make(map[PlayerID]PlayerID)
	}
	e.state.Delegates[child] = parent
}

// actsFor reports whether actor may play the active player's turn: either
// the active identity itself or a registered child of it.
func (s *GameState) actsFor(actor, active PlayerID) bool {
	if actor == active {
		return true
	}
	return s.Delegates[actor] == active
}

// Apply feeds one command to the turn controller. The returned flag reports
// whether any state changed, so callers can skip redundant redraws and
// broadcasts. Commands from non-active identities, commands after the game
// ended, and illegal selections are all silently ignored.
func (e *GameEngine) Apply(cmd Command) bool {
	s := e.state
	if s.GameOver {
		return false
	}
	if !s.actsFor(cmd.Actor, s.TurnOrder[0]) {
		return false
	}

	switch s.Phase {
	case PhaseInsert:
		return e.applyInsert(cmd)
	case PhaseMove:
		return e.applyMove(cmd)
	}
	panic(fmt.Sprintf("engine: unhandled phase %q", string(s.Phase)))
}

// applyInsert handles commands during the insert phase: directional input
// steers the insertion guide, rotate turns the loose tile, confirm shoves
// it into the board and opens the move phase.
func (e *GameEngine) applyInsert(cmd Command) bool {
	s := e.state
	board := s.Board

	switch cmd.Kind {
	case CommandMove:
		if !cmd.Direction.Valid() {
			return false
		}
		if board.LoosePosition == nil {
			// First directional input places the guide at the matching
			// edge's first slot.
			board.LoosePosition = &GuidePosition{Edge: cmd.Direction, Index: 0}
			return true
		}
		next := NextGuidePosition(cmd.Direction, *board.LoosePosition, board.GuidesX(), board.GuidesY())
		if next == *board.LoosePosition {
			return false
		}
		board.LoosePosition = &next
		return true

	case CommandRotate:
		board.LooseTile.Rotate()
		return true

	case CommandConfirm:
		if board.LoosePosition == nil {
			return false
		}
		board.InsertLooseTile()
		s.Phase = PhaseMove
		s.Cursor = board.Token(s.TurnOrder[0]).Position
		return true
	}
	return false
}

// applyMove handles commands during the move phase: directional input moves
// the cell cursor, confirm attempts the move, consumes a reached target,
// and passes the turn.
func (e *GameEngine) applyMove(cmd Command) bool {
	s := e.state
	board := s.Board

	switch cmd.Kind {
	case CommandMove:
		if !cmd.Direction.Valid() {
			return false
		}
		next := cmd.Direction.Step(s.Cursor)
		if !board.InBounds(next) {
			return false
		}
		s.Cursor = next
		return true

	case CommandRotate:
		return false

	case CommandConfirm:
		active := s.TurnOrder[0]
		token := board.Token(active)
		if !board.ReachableCoords(token.Position)[s.Cursor] {
			return false
		}
		board.MovePlayer(active, s.Cursor)

		tile := board.TileAt(s.Cursor)
		if len(token.Targets) > 0 && tile.Item == token.Targets[0] {
			board.PlayerReachedTarget(active)
			tile.Item = 0
		}

		if len(token.Targets) == 0 {
			s.GameOver = true
			s.Winner = active
			return true
		}

		s.TurnOrder = append(s.TurnOrder[1:], s.TurnOrder[0])
		s.Phase = PhaseInsert
		s.Cursor = board.Token(s.TurnOrder[0]).Position
		return true
	}
	return false
}

// Clone returns a deep copy of the game state.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := &GameState{
		Phase:      s.Phase,
		Cursor:     s.Cursor,
		GameOver:   s.GameOver,
		Winner:     s.Winner,
		ConfigName: s.ConfigName,
		TurnOrder:  append([]PlayerID(nil), s.TurnOrder...),
	}
	if s.Delegates != nil {
		out.Delegates = make(map[PlayerID]PlayerID, len(s.Delegates))
		for child, parent := range s.Delegates {
			out.Delegates[child] = parent
		}
	}
	if s.Board != nil {
		out.Board = s.Board.Clone()
	}
	return out
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{
		Width:     b.Width,
		Height:    b.Height,
		LooseTile: b.LooseTile,
	}
	out.Tiles = make([][]Tile, len(b.Tiles))
	for row := range b.Tiles {
		out.Tiles[row] = append([]Tile(nil), b.Tiles[row]...)
	}
	if b.LoosePosition != nil {
		pos := *b.LoosePosition
		out.LoosePosition = &pos
	}
	out.Players = make([]*PlayerToken, len(b.Players))
	for i, token := range b.Players {
		copied := *token
		copied.Targets = append([]TargetID(nil), token.Targets...)
		out.Players[i] = &copied
	}
	return out
}
