package maze

import "math/rand"

// cell is a candidate grid coordinate for carving: both x and y odd, so it
// sits on the lattice of potential rooms rather than on a wall row/column.
type cell struct {
	x, y int
}

// maker carves a grid in place using the recursive-backtracker algorithm,
// ported from original_source/shared/src/maze/maker.rs's MazeMaker +
// Backtrack impl.
type maker struct {
	grid   [][]uint8
	width  int
	height int
	rng    *rand.Rand
}

func newMaker(horizontalRadius, verticalRadius int, rng *rand.Rand) *maker {
	width := 2*horizontalRadius + 1
	height := 2*verticalRadius + 1

	grid := make([][]uint8, height)
	for i := range grid {
		row := make([]uint8, width)
		for j := range row {
			row[j] = Wall
		}
		grid[i] = row
	}

	return &maker{grid: grid, width: width, height: height, rng: rng}
}

func (m *maker) backtrack() {
	cells := m.cells()
	if len(cells) == 0 {
		return
	}

	initial := pickOut(m.rng, &cells)
	stack := []cell{initial}
	m.visit(initial)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		next, ok := m.pickNeighbor(curr, true, false)
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		m.removeWallBetween(curr, next)
		m.visit(next)
		stack = append(stack, next)
	}
}

// cells returns every candidate cell: both coordinates odd, matching the
// original's get_cells (x%2==1 && y%2==1 given the loop skips x%2==0 ||
// y%2==0).
func (m *maker) cells() []cell {
	var out []cell
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if x%2 == 0 || y%2 == 0 {
				continue
			}
			out = append(out, cell{x: x, y: y})
		}
	}
	return out
}

func (m *maker) visit(c cell) { m.grid[c.y][c.x] = Open }

func (m *maker) isVisited(c cell) bool { return m.grid[c.y][c.x] == Open }

// neighbors returns the cells two steps away from c in each grid direction,
// optionally filtered by visited state.
func (m *maker) neighbors(c cell, onlyUnvisited bool) []cell {
	directions := [4][2]int{{0, 2}, {2, 0}, {0, -2}, {-2, 0}}

	var valid []cell
	for _, d := range directions {
		nx, ny := c.x+d[0], c.y+d[1]
		inBounds := nx > 0 && nx < m.width-1 && ny > 0 && ny < m.height-1
		if !inBounds {
			continue
		}
		n := cell{x: nx, y: ny}
		if onlyUnvisited && m.isVisited(n) {
			continue
		}
		valid = append(valid, n)
	}
	return valid
}

func (m *maker) pickNeighbor(c cell, onlyUnvisited, onlyVisited bool) (cell, bool) {
	if onlyUnvisited && onlyVisited {
		return cell{}, false
	}
	candidates := m.neighbors(c, onlyUnvisited)
	if len(candidates) == 0 {
		return cell{}, false
	}
	return candidates[m.rng.Intn(len(candidates))], true
}

func (m *maker) removeWallBetween(a, b cell) {
	x := (a.x + b.x) / 2
	y := (a.y + b.y) / 2
	m.grid[y][x] = Open
}

func pickOut(rng *rand.Rand, cells *[]cell) cell {
	list := *cells
	i := rng.Intn(len(list))
	picked := list[i]
	list[i] = list[len(list)-1]
	*cells = list[:len(list)-1]
	return picked
}
