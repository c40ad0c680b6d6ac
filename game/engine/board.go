package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrTooManyPlayers is returned when a board is created for more players
// than there are starting corners.
var ErrTooManyPlayers = errors.New("engine: too many players")

// PlayerToken is one player's piece on the board, together with the ordered
// queue of target markers the player must visit. The queue only ever
// shrinks; an empty queue means the player has won.
type PlayerToken struct {
	ID       PlayerID   `json:"id"`
	Position Position   `json:"position"`
	Targets  []TargetID `json:"targets"`
}

// GuidePosition identifies an insertion guide: the edge direction the line
// will shift toward, and the guide's index along that edge.
type GuidePosition struct {
	Edge  Direction `json:"edge"`
	Index int       `json:"index"`
}

// Board holds the maze grid, the loose tile, and the player tokens. All
// fields are exported so the full board is a value that can be captured,
// serialized and replaced wholesale.
type Board struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Tiles is indexed [row][col].
	Tiles [][]Tile `json:"tiles"`

	// LooseTile is the spare tile held for insertion. LoosePosition is the
	// guide slot it currently sits at, nil when not yet placed.
	LooseTile     Tile           `json:"loose_tile"`
	LoosePosition *GuidePosition `json:"loose_position,omitempty"`

	// Players is ordered by player id; that order seeds the turn rotation.
	Players []*PlayerToken `json:"players"`
}

// corner describes one fixed corner tile: its coordinate factory and the
// L-tile orientation that makes it face inward.
type corner struct {
	pos         func(width, height int) Position
	orientation Direction
}

// startCorners lists the corners in token assignment order: the first
// player starts NW, the second SE, then NE and SW.
var startCorners = [MaxPlayers]corner{
	{func(w, h int) Position { return Position{Row: 0, Col: 0} }, East},
	{func(w, h int) Position { return Position{Row: h - 1, Col: w - 1} }, West},
	{func(w, h int) Position { return Position{Row: 0, Col: w - 1} }, South},
	{func(w, h int) Position { return Position{Row: h - 1, Col: 0} }, North},
}

// NewBoard generates a board from the configuration: random tiles on every
// non-corner cell, inward-facing L corners, target markers scattered over
// distinct cells, and one token per player on its starting corner.
func NewBoard(config *GameConfig, rng *rand.Rand) (*Board, error) {
	if len(config.Players) > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyPlayers, len(config.Players), MaxPlayers)
	}

	b := &Board{
		Width:     config.Width,
		Height:    config.Height,
		LooseTile: randomTile(rng),
	}

	b.Tiles = make([][]Tile, b.Height)
	for row := range b.Tiles {
		b.Tiles[row] = make([]Tile, b.Width)
		for col := range b.Tiles[row] {
			b.Tiles[row][col] = randomTile(rng)
		}
	}
	for _, c := range startCorners {
		pos := c.pos(b.Width, b.Height)
		b.Tiles[pos.Row][pos.Col] = Tile{Shape: ShapeL, Orientation: c.orientation}
	}

	b.scatterTargets(config, rng)

	ids := make([]PlayerID, len(config.Players))
	copy(ids, config.Players)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		b.Players = append(b.Players, &PlayerToken{
			ID:       id,
			Position: startCorners[i].pos(b.Width, b.Height),
		})
	}

	b.dealTargets(rng)
	return b, nil
}

// scatterTargets places every target marker on a uniformly chosen cell. A
// collision bumps the marker already on the cell onto the loose tile,
// discarding whatever marker was waiting there. Losing a marker that way is
// accepted generation behavior, not an invariant violation.
func (b *Board) scatterTargets(config *GameConfig, rng *rand.Rand) {
	total := config.TargetsPerPlayer * len(config.Players)
	for id := TargetID(1); id <= TargetID(total); id++ {
		row := rng.Intn(b.Height)
		col := rng.Intn(b.Width)
		if bumped := b.Tiles[row][col].Item; bumped != 0 {
			b.LooseTile.Item = bumped
		}
		b.Tiles[row][col].Item = id
	}
}

// dealTargets partitions the surviving markers into equal-size shuffled
// blocks, one queue per player. Markers lost to placement collisions shrink
// every queue equally; a remainder block is left undealt.
func (b *Board) dealTargets(rng *rand.Rand) {
	var survivors []TargetID
	for row := range b.Tiles {
		for col := range b.Tiles[row] {
			if item := b.Tiles[row][col].Item; item != 0 {
				survivors = append(survivors, item)
			}
		}
	}
	if b.LooseTile.Item != 0 {
		survivors = append(survivors, b.LooseTile.Item)
	}

	rng.Shuffle(len(survivors), func(i, j int) {
		survivors[i], survivors[j] = survivors[j], survivors[i]
	})

	size := len(survivors) / len(b.Players)
	for i, token := range b.Players {
		token.Targets = append([]TargetID(nil), survivors[i*size:(i+1)*size]...)
	}
}

// randomTile draws a tile with uniform shape and orientation.
func randomTile(rng *rand.Rand) Tile {
	shapes := Shapes()
	return Tile{
		Shape:       shapes[rng.Intn(len(shapes))],
		Orientation: clockwise[rng.Intn(len(clockwise))],
	}
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.Height && p.Col >= 0 && p.Col < b.Width
}

// TileAt returns a pointer to the tile at p. The caller must pass an
// in-bounds position.
func (b *Board) TileAt(p Position) *Tile {
	return &b.Tiles[p.Row][p.Col]
}

// Token returns the token for the given player id, or nil if unknown.
func (b *Board) Token(id PlayerID) *PlayerToken {
	for _, token := range b.Players {
		if token.ID == id {
			return token
		}
	}
	return nil
}

// GuidesX returns the number of insertion guides along the north and south
// edges (one per insertable column).
func (b *Board) GuidesX() int {
	return b.Width / 2
}

// GuidesY returns the number of insertion guides along the east and west
// edges (one per insertable row).
func (b *Board) GuidesY() int {
	return b.Height / 2
}

// InsertLooseTile shoves the loose tile into the line selected by the
// current guide position. Every tile on the line moves one step toward the
// guide's edge direction; the tile pushed off that edge becomes the new
// loose tile, and the vacated cell at the opposite edge receives the old
// one. Tokens on the line are carried along, wrapping to the opposite end
// of the same line when pushed past the edge. Returns false without
// mutating anything when no guide position is set.
func (b *Board) InsertLooseTile() bool {
	if b.LoosePosition == nil {
		return false
	}
	dir := b.LoosePosition.Edge
	line := 2*b.LoosePosition.Index + 1

	switch dir {
	case North:
		ejected := b.Tiles[0][line]
		for row := 0; row < b.Height-1; row++ {
			b.Tiles[row][line] = b.Tiles[row+1][line]
		}
		b.Tiles[b.Height-1][line] = b.LooseTile
		b.LooseTile = ejected
	case South:
		ejected := b.Tiles[b.Height-1][line]
		for row := b.Height - 1; row > 0; row-- {
			b.Tiles[row][line] = b.Tiles[row-1][line]
		}
		b.Tiles[0][line] = b.LooseTile
		b.LooseTile = ejected
	case East:
		ejected := b.Tiles[line][b.Width-1]
		for col := b.Width - 1; col > 0; col-- {
			b.Tiles[line][col] = b.Tiles[line][col-1]
		}
		b.Tiles[line][0] = b.LooseTile
		b.LooseTile = ejected
	case West:
		ejected := b.Tiles[line][0]
		for col := 0; col < b.Width-1; col++ {
			b.Tiles[line][col] = b.Tiles[line][col+1]
		}
		b.Tiles[line][b.Width-1] = b.LooseTile
		b.LooseTile = ejected
	default:
		panic(fmt.Sprintf("engine: invalid guide edge %q", string(dir)))
	}

	for _, token := range b.Players {
		if dir.Horizontal() {
			if token.Position.Row != line {
				continue
			}
			step := 1
			if dir == West {
				step = -1
			}
			token.Position.Col = (token.Position.Col + step + b.Width) % b.Width
		} else {
			if token.Position.Col != line {
				continue
			}
			step := 1
			if dir == North {
				step = -1
			}
			token.Position.Row = (token.Position.Row + step + b.Height) % b.Height
		}
	}

	// The ejected tile has not been placed at a guide yet.
	b.LoosePosition = nil
	return true
}

// ReachableCoords returns the connected component of cells accessible from
// `from`, including `from` itself. Membership is the only guarantee; do not
// depend on any iteration order.
func (b *Board) ReachableCoords(from Position) map[Position]bool {
	visited := map[Position]bool{from: true}
	queue := []Position{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dir := range clockwise {
			next := dir.Step(current)
			if !b.InBounds(next) || visited[next] {
				continue
			}
			if Connected(*b.TileAt(current), *b.TileAt(next), dir) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// MovePlayer overwrites the player's position. It performs no legality
// check; callers validate the destination via ReachableCoords first.
func (b *Board) MovePlayer(id PlayerID, pos Position) {
	token := b.Token(id)
	if token == nil {
		panic(fmt.Sprintf("engine: unknown player %q", string(id)))
	}
	token.Position = pos
}

// PlayerReachedTarget pops the head of the player's target queue and
// returns it. Calling it with an empty queue is a programming error: the
// win condition is "queue empty", checked before calling, never after.
func (b *Board) PlayerReachedTarget(id PlayerID) TargetID {
	token := b.Token(id)
	if token == nil {
		panic(fmt.Sprintf("engine: unknown player %q", string(id)))
	}
	if len(token.Targets) == 0 {
		panic(fmt.Sprintf("engine: player %q has no targets left", string(id)))
	}
	head := token.Targets[0]
	token.Targets = token.Targets[1:]
	return head
}
