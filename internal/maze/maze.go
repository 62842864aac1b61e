// Package maze implements the pure maze generator described in spec.md
// §3/§4.2: a grid of wall/open cells plus a cached list of open coordinates,
// generated from a difficulty number and immutable for the life of a match.
//
// Grounded on original_source/shared/src/maze.rs and
// original_source/shared/src/maze/maker.rs (MazeMaker, recursive
// backtracker). The original offers eight generators (Backtrack,
// VoronoiStack, BinaryTree, Wilson, VoronoiRandom, Kruskal, Prim,
// VoronoiQueue); this package supplements spec.md's generator non-goal with
// one concrete algorithm, the recursive backtracker, which the original
// documents as producing "more long corridors" — the easiest of the eight.
package maze

import "math/rand"

const (
	// Wall and Open are the two cell values making up Grid.
	Wall uint8 = 1
	Open uint8 = 0

	// CellSize is the side length, in world units, of one grid cell.
	CellSize = 64.0
)

// Coord is a (row, col) grid coordinate.
type Coord struct {
	Row, Col int
}

// Maze is an immutable grid plus its cached open cells and, for solo
// matches, a chosen exit coordinate (spec.md §3 Maze).
type Maze struct {
	Grid      [][]uint8
	Spaces    []Coord
	ExitCoord *Coord
}

// radiusForDifficulty maps the spec's 1..=3 difficulty level to a maze
// radius, growing the grid with difficulty. Not specified by spec.md or the
// original source directly; chosen so level 1 yields a small maze and level
// 3 a considerably larger one.
func radiusForDifficulty(difficulty uint8) int {
	switch difficulty {
	case 1:
		return 8
	case 2:
		return 12
	default:
		return 16
	}
}

// New generates a maze for the given difficulty (1..=3) using the
// recursive-backtracker algorithm, with grid dimensions (2R+1)x(2R+1) so
// both axes are odd and the border is entirely walls (spec.md §3).
func New(difficulty uint8, rng *rand.Rand) *Maze {
	radius := radiusForDifficulty(difficulty)
	m := newMaker(radius, radius, rng)
	m.backtrack()

	grid := m.grid
	spaces := make([]Coord, 0, len(grid)*len(grid[0])/2)
	for r, row := range grid {
		for c, cell := range row {
			if cell == Open {
				spaces = append(spaces, Coord{Row: r, Col: c})
			}
		}
	}

	return &Maze{Grid: grid, Spaces: spaces}
}

// WithExit sets the exit coordinate to the open cell with the greatest
// shortest-path distance from spawn, matching the original's solo-match
// behavior of placing the exit as far from the player as possible. spawn
// must be an open cell.
func (m *Maze) WithExit(spawn Coord) *Maze {
	dist := m.distancesFrom(spawn)

	var farthest Coord
	best := -1
	for coord, d := range dist {
		if d > best {
			best = d
			farthest = coord
		}
	}
	if best >= 0 {
		m.ExitCoord = &farthest
	}
	return m
}

// distancesFrom runs a breadth-first search over open cells starting at
// spawn, returning shortest-path distance (in grid steps) to every
// reachable open cell.
func (m *Maze) distancesFrom(spawn Coord) map[Coord]int {
	dist := map[Coord]int{spawn: 0}
	queue := []Coord{spawn}

	deltas := []Coord{{Row: 0, Col: 1}, {Row: 0, Col: -1}, {Row: 1, Col: 0}, {Row: -1, Col: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, d := range deltas {
			next := Coord{Row: cur.Row + d.Row, Col: cur.Col + d.Col}
			if !m.inBounds(next) || m.Grid[next.Row][next.Col] == Wall {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}

	return dist
}

func (m *Maze) inBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < len(m.Grid) && c.Col >= 0 && c.Col < len(m.Grid[0])
}

// IsWayClear reports whether the grid cell under the given continuous
// position is open (or the position is outside the maze entirely), matching
// the original's is_way_clear semantics used for wall-collision checks.
func (m *Maze) IsWayClear(x, z float64, cellSize float64) bool {
	col := int(x / cellSize)
	row := int(z / cellSize)

	outside := x < 0 || z < 0 || row >= len(m.Grid) || col >= len(m.Grid[0])
	if outside {
		return true
	}
	return m.Grid[row][col] == Open
}
