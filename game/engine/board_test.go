package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func testConfig(players ...PlayerID) *GameConfig {
	if len(players) == 0 {
		players = []PlayerID{"alice", "bob"}
	}
	return &GameConfig{
		Name:             "Board Test Config",
		Description:      "Configuration for board tests",
		Width:            7,
		Height:           7,
		Players:          players,
		TargetsPerPlayer: 4,
		Seed:             42,
	}
}

func newTestBoard(t *testing.T, config *GameConfig) *Board {
	t.Helper()
	board, err := NewBoard(config, rand.New(rand.NewSource(config.Seed)))
	if err != nil {
		t.Fatalf("NewBoard failed: %v", err)
	}
	return board
}

func assertCornersFixed(t *testing.T, b *Board) {
	t.Helper()
	expected := map[Position]Direction{
		{Row: 0, Col: 0}:                      East,
		{Row: 0, Col: b.Width - 1}:            South,
		{Row: b.Height - 1, Col: b.Width - 1}: West,
		{Row: b.Height - 1, Col: 0}:           North,
	}
	for pos, orientation := range expected {
		tile := b.TileAt(pos)
		if tile.Shape != ShapeL {
			t.Errorf("corner %v: shape %s, want L", pos, tile.Shape)
		}
		if tile.Orientation != orientation {
			t.Errorf("corner %v: orientation %s, want %s", pos, tile.Orientation, orientation)
		}
	}
}

func TestNewBoardCorners(t *testing.T) {
	assertCornersFixed(t, newTestBoard(t, testConfig()))
}

func TestNewBoardCornersFaceInward(t *testing.T) {
	b := newTestBoard(t, testConfig())
	// The NW corner opens east and south, into the board.
	nw := b.TileAt(Position{Row: 0, Col: 0})
	if !nw.Open(East) || !nw.Open(South) {
		t.Errorf("NW corner open set %v, want east+south", nw.OpenDirections())
	}
	se := b.TileAt(Position{Row: b.Height - 1, Col: b.Width - 1})
	if !se.Open(West) || !se.Open(North) {
		t.Errorf("SE corner open set %v, want west+north", se.OpenDirections())
	}
}

func TestNewBoardPlayerAssignment(t *testing.T) {
	config := testConfig("delta", "alpha", "charlie", "bravo")
	b := newTestBoard(t, config)

	if len(b.Players) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(b.Players))
	}

	// Tokens are assigned in player id order to NW, SE, NE, SW.
	expected := []struct {
		id  PlayerID
		pos Position
	}{
		{"alpha", Position{Row: 0, Col: 0}},
		{"bravo", Position{Row: 6, Col: 6}},
		{"charlie", Position{Row: 0, Col: 6}},
		{"delta", Position{Row: 6, Col: 0}},
	}
	for i, want := range expected {
		if b.Players[i].ID != want.id {
			t.Errorf("player %d: id %s, want %s", i, b.Players[i].ID, want.id)
		}
		if b.Players[i].Position != want.pos {
			t.Errorf("player %s: position %v, want %v", want.id, b.Players[i].Position, want.pos)
		}
	}
}

func TestNewBoardTooManyPlayers(t *testing.T) {
	config := testConfig("p1", "p2", "p3", "p4", "p5")
	_, err := NewBoard(config, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrTooManyPlayers) {
		t.Fatalf("expected ErrTooManyPlayers, got %v", err)
	}
}

func TestNewBoardTargetQueues(t *testing.T) {
	b := newTestBoard(t, testConfig())

	seen := make(map[TargetID]PlayerID)
	queueLen := len(b.Players[0].Targets)
	for _, token := range b.Players {
		if len(token.Targets) != queueLen {
			t.Errorf("uneven queues: %d vs %d", len(token.Targets), queueLen)
		}
		for _, target := range token.Targets {
			if owner, dup := seen[target]; dup {
				t.Errorf("target %d dealt to both %s and %s", target, owner, token.ID)
			}
			seen[target] = token.ID
		}
	}
	if queueLen == 0 {
		t.Error("expected non-empty target queues")
	}
}

func TestNewBoardMarkersOnDistinctTiles(t *testing.T) {
	b := newTestBoard(t, testConfig())

	seen := make(map[TargetID]bool)
	check := func(item TargetID) {
		if item == 0 {
			return
		}
		if seen[item] {
			t.Errorf("marker %d appears on more than one tile", item)
		}
		seen[item] = true
	}
	for row := range b.Tiles {
		for col := range b.Tiles[row] {
			check(b.Tiles[row][col].Item)
		}
	}
	check(b.LooseTile.Item)
}

func TestInsertLooseTileNoGuideIsNoop(t *testing.T) {
	b := newTestBoard(t, testConfig())
	before := b.Clone()

	if b.InsertLooseTile() {
		t.Error("expected insert without a guide to report false")
	}
	for row := range b.Tiles {
		for col := range b.Tiles[row] {
			if b.Tiles[row][col] != before.Tiles[row][col] {
				t.Fatalf("tile (%d,%d) mutated by no-op insert", row, col)
			}
		}
	}
}

func TestInsertLooseTileNorthColumn(t *testing.T) {
	b := newTestBoard(t, testConfig())
	before := b.Clone()
	b.MovePlayer("alice", Position{Row: 0, Col: 1})

	b.LoosePosition = &GuidePosition{Edge: North, Index: 0}
	if !b.InsertLooseTile() {
		t.Fatal("expected insert to succeed")
	}

	// Column 1 shifted one step north.
	for row := 0; row < b.Height-1; row++ {
		if b.Tiles[row][1] != before.Tiles[row+1][1] {
			t.Errorf("row %d col 1: tile did not shift north", row)
		}
	}
	if b.Tiles[b.Height-1][1] != before.LooseTile {
		t.Error("old loose tile did not enter at the south end")
	}
	if b.LooseTile != before.Tiles[0][1] {
		t.Error("ejected tile did not become the new loose tile")
	}
	if b.LoosePosition != nil {
		t.Error("guide position should reset after insertion")
	}

	// Token at (0,1) was pushed off the north edge and wraps to (6,1).
	if got := b.Token("alice").Position; got != (Position{Row: 6, Col: 1}) {
		t.Errorf("token wrapped to %v, want (6,1)", got)
	}
}

func TestInsertLooseTileEastRow(t *testing.T) {
	b := newTestBoard(t, testConfig())
	before := b.Clone()
	b.MovePlayer("alice", Position{Row: 3, Col: 4})
	b.MovePlayer("bob", Position{Row: 2, Col: 4}) // off the line, unaffected

	b.LoosePosition = &GuidePosition{Edge: East, Index: 1}
	if !b.InsertLooseTile() {
		t.Fatal("expected insert to succeed")
	}

	for col := 1; col < b.Width; col++ {
		if b.Tiles[3][col] != before.Tiles[3][col-1] {
			t.Errorf("row 3 col %d: tile did not shift east", col)
		}
	}
	if b.Tiles[3][0] != before.LooseTile {
		t.Error("old loose tile did not enter at the west end")
	}
	if b.LooseTile != before.Tiles[3][b.Width-1] {
		t.Error("ejected tile did not become the new loose tile")
	}

	if got := b.Token("alice").Position; got != (Position{Row: 3, Col: 5}) {
		t.Errorf("token on the line moved to %v, want (3,5)", got)
	}
	if got := b.Token("bob").Position; got != (Position{Row: 2, Col: 4}) {
		t.Errorf("token off the line moved to %v, want (2,4)", got)
	}
}

func TestInsertCycleRestoresLine(t *testing.T) {
	b := newTestBoard(t, testConfig())
	b.MovePlayer("alice", Position{Row: 4, Col: 3})
	before := b.Clone()

	// One full cycle is line length + 1 insertions: the spare tile joins
	// the seven line tiles in an eight-tile rotation. Tokens wrap modulo
	// the line length, so they return home every seven insertions.
	for i := 0; i < b.Height; i++ {
		b.LoosePosition = &GuidePosition{Edge: South, Index: 1}
		b.InsertLooseTile()
	}
	if got := b.Token("alice").Position; got != (Position{Row: 4, Col: 3}) {
		t.Errorf("token at %v after %d insertions, want (4,3)", got, b.Height)
	}

	b.LoosePosition = &GuidePosition{Edge: South, Index: 1}
	b.InsertLooseTile()
	for row := 0; row < b.Height; row++ {
		if b.Tiles[row][3] != before.Tiles[row][3] {
			t.Errorf("row %d col 3: tile not restored after full cycle", row)
		}
	}
	if b.LooseTile != before.LooseTile {
		t.Error("loose tile not restored after full cycle")
	}
}

func TestInsertNeverTouchesCorners(t *testing.T) {
	b := newTestBoard(t, testConfig())

	for _, edge := range Directions() {
		guides := b.GuidesX()
		if edge.Horizontal() {
			guides = b.GuidesY()
		}
		for index := 0; index < guides; index++ {
			b.LoosePosition = &GuidePosition{Edge: edge, Index: index}
			b.InsertLooseTile()
			assertCornersFixed(t, b)
		}
	}
}

func TestReachableCoords(t *testing.T) {
	b := newTestBoard(t, testConfig())

	// Carve a deterministic corridor across row 3.
	for col := 0; col < b.Width; col++ {
		b.Tiles[3][col] = Tile{Shape: ShapeI, Orientation: East}
	}
	from := Position{Row: 3, Col: 0}

	reachable := b.ReachableCoords(from)
	if !reachable[from] {
		t.Error("reachable set must contain the start cell")
	}
	for col := 1; col < b.Width; col++ {
		if !reachable[Position{Row: 3, Col: col}] {
			t.Errorf("expected (3,%d) to be reachable along the corridor", col)
		}
	}
}

func TestReachableCoordsSymmetric(t *testing.T) {
	b := newTestBoard(t, testConfig())

	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			p := Position{Row: row, Col: col}
			for q := range b.ReachableCoords(p) {
				if !b.ReachableCoords(q)[p] {
					t.Fatalf("reachability not symmetric between %v and %v", p, q)
				}
			}
		}
	}
}

func TestMovePlayerDoesNotValidate(t *testing.T) {
	b := newTestBoard(t, testConfig())
	// MovePlayer is an unconditional overwrite by contract.
	b.MovePlayer("alice", Position{Row: 5, Col: 5})
	if got := b.Token("alice").Position; got != (Position{Row: 5, Col: 5}) {
		t.Errorf("position %v, want (5,5)", got)
	}
}

func TestPlayerReachedTargetPopsHead(t *testing.T) {
	b := newTestBoard(t, testConfig())
	token := b.Token("alice")
	token.Targets = []TargetID{11, 12}

	if got := b.PlayerReachedTarget("alice"); got != 11 {
		t.Errorf("popped %d, want 11", got)
	}
	if len(token.Targets) != 1 || token.Targets[0] != 12 {
		t.Errorf("queue %v, want [12]", token.Targets)
	}
}

func TestPlayerReachedTargetEmptyQueuePanics(t *testing.T) {
	b := newTestBoard(t, testConfig())
	b.Token("alice").Targets = nil

	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty target queue")
		}
	}()
	b.PlayerReachedTarget("alice")
}
