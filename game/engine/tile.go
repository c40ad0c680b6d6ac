package engine

import "fmt"

// Shape classifies a tile by its connector layout.
type Shape string

const (
	// ShapeL is a corner piece: canonical connectors North and East.
	ShapeL Shape = "L"
	// ShapeI is a straight piece: canonical connectors North and South.
	ShapeI Shape = "I"
	// ShapeT is a junction piece: canonical connectors West, North and East.
	ShapeT Shape = "T"
)

// canonicalOpen lists each shape's open connectors at orientation North.
var canonicalOpen = map[Shape][]Direction{
	ShapeL: {North, East},
	ShapeI: {North, South},
	ShapeT: {West, North, East},
}

// Shapes returns the tile shapes in a fixed order.
func Shapes() [3]Shape {
	return [3]Shape{ShapeL, ShapeI, ShapeT}
}

// Tile is one maze piece. Its open connectors are derived from shape and
// orientation, never stored. Item carries an optional target marker that
// travels with the tile through insertions.
type Tile struct {
	Shape       Shape     `json:"shape"`
	Orientation Direction `json:"orientation"`
	Item        TargetID  `json:"item,omitempty"`
}

// OpenDirections returns the tile's open connectors: the shape's canonical
// set rotated by the tile's orientation.
func (t Tile) OpenDirections() []Direction {
	canonical, ok := canonicalOpen[t.Shape]
	if !ok {
		panic(fmt.Sprintf("engine: invalid tile shape %q", string(t.Shape)))
	}
	open := make([]Direction, len(canonical))
	for i, d := range canonical {
		open[i] = d.Rotated(t.Orientation)
	}
	return open
}

// BlockedDirections returns the complement of OpenDirections.
func (t Tile) BlockedDirections() []Direction {
	blocked := make([]Direction, 0, 4-len(canonicalOpen[t.Shape]))
	for _, d := range clockwise {
		if !t.Open(d) {
			blocked = append(blocked, d)
		}
	}
	return blocked
}

// Open reports whether the tile has an open connector facing d.
func (t Tile) Open(d Direction) bool {
	for _, open := range t.OpenDirections() {
		if open == d {
			return true
		}
	}
	return false
}

// Rotate advances the tile's orientation by one clockwise quarter turn.
func (t *Tile) Rotate() {
	t.Orientation = t.Orientation.Rotated(East)
}

// Connected reports whether a path continues from tile a into tile b, where
// dir is the direction from a to b. Both facing connectors must be open.
func Connected(a, b Tile, dir Direction) bool {
	return a.Open(dir) && b.Open(dir.Opposite())
}
