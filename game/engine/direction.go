package engine

import "fmt"

// Direction is one of the four cardinal directions. Directions double as
// rotations: rotating by North is the identity, rotating by East is one
// clockwise quarter turn, and so on.
type Direction string

const (
	North Direction = "north"
	East  Direction = "east"
	South Direction = "south"
	West  Direction = "west"
)

// clockwise lists the directions in clockwise order, starting at North.
var clockwise = [4]Direction{North, East, South, West}

// Directions returns the four cardinal directions in clockwise order.
func Directions() [4]Direction {
	return clockwise
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	switch d {
	case North, East, South, West:
		return true
	}
	return false
}

// index returns d's position in clockwise order. Directions come from a
// closed enum; anything else is a corrupt value and fails fast.
func (d Direction) index() int {
	for i, dir := range clockwise {
		if d == dir {
			return i
		}
	}
	panic(fmt.Sprintf("engine: invalid direction %q", string(d)))
}

// Rotated returns d rotated clockwise by the quarter turns encoded in `by`
// (North = 0 turns, East = 1, South = 2, West = 3).
func (d Direction) Rotated(by Direction) Direction {
	return clockwise[(d.index()+by.index())%4]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return d.Rotated(South)
}

// Step returns the coordinate of the neighboring cell in direction d.
// The result may lie outside the board; callers must bounds-check it.
func (d Direction) Step(p Position) Position {
	switch d {
	case North:
		return Position{Row: p.Row - 1, Col: p.Col}
	case South:
		return Position{Row: p.Row + 1, Col: p.Col}
	case East:
		return Position{Row: p.Row, Col: p.Col + 1}
	case West:
		return Position{Row: p.Row, Col: p.Col - 1}
	}
	panic(fmt.Sprintf("engine: invalid direction %q", string(d)))
}

// Horizontal reports whether d runs along a row (East or West).
func (d Direction) Horizontal() bool {
	return d == East || d == West
}
