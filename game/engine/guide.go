package engine

import "fmt"

// NextGuidePosition maps a directional command and the current guide slot
// to the next guide slot. guidesX is the number of guides along the north
// and south edges, guidesY along the east and west edges.
//
// Index conventions: north/south edges count west to east, east/west edges
// count north to south. The transition rules, per command relative to the
// current edge:
//
//   - pointing off the board (command == edge): no movement;
//   - pointing across the board (command == opposite edge): jump straight
//     to the matching edge at the symmetric slot;
//   - along the edge: step one slot; stepping past either end carries the
//     guide around the corner onto the perpendicular edge, entering at the
//     slot nearest that corner.
//
// The four edges are exhaustive; any other edge value is a corrupt state
// and fails fast.
func NextGuidePosition(cmd Direction, cur GuidePosition, guidesX, guidesY int) GuidePosition {
	switch cur.Edge {
	case North:
		switch cmd {
		case North:
			return cur
		case South:
			return GuidePosition{Edge: South, Index: cur.Index}
		case West:
			if cur.Index > 0 {
				return GuidePosition{Edge: North, Index: cur.Index - 1}
			}
			return GuidePosition{Edge: West, Index: 0}
		case East:
			if cur.Index < guidesX-1 {
				return GuidePosition{Edge: North, Index: cur.Index + 1}
			}
			return GuidePosition{Edge: East, Index: 0}
		}
	case South:
		switch cmd {
		case South:
			return cur
		case North:
			return GuidePosition{Edge: North, Index: cur.Index}
		case West:
			if cur.Index > 0 {
				return GuidePosition{Edge: South, Index: cur.Index - 1}
			}
			return GuidePosition{Edge: West, Index: guidesY - 1}
		case East:
			if cur.Index < guidesX-1 {
				return GuidePosition{Edge: South, Index: cur.Index + 1}
			}
			return GuidePosition{Edge: East, Index: guidesY - 1}
		}
	case West:
		switch cmd {
		case West:
			return cur
		case East:
			return GuidePosition{Edge: East, Index: cur.Index}
		case North:
			if cur.Index > 0 {
				return GuidePosition{Edge: West, Index: cur.Index - 1}
			}
			return GuidePosition{Edge: North, Index: 0}
		case South:
			if cur.Index < guidesY-1 {
				return GuidePosition{Edge: West, Index: cur.Index + 1}
			}
			return GuidePosition{Edge: South, Index: 0}
		}
	case East:
		switch cmd {
		case East:
			return cur
		case West:
			return GuidePosition{Edge: West, Index: cur.Index}
		case North:
			if cur.Index > 0 {
				return GuidePosition{Edge: East, Index: cur.Index - 1}
			}
			return GuidePosition{Edge: North, Index: guidesX - 1}
		case South:
			if cur.Index < guidesY-1 {
				return GuidePosition{Edge: East, Index: cur.Index + 1}
			}
			return GuidePosition{Edge: South, Index: guidesX - 1}
		}
	}
	panic(fmt.Sprintf("engine: unhandled guide transition cmd=%q edge=%q index=%d",
		string(cmd), string(cur.Edge), cur.Index))
}
