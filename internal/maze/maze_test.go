package maze

import (
	"math/rand"
	"testing"
)

func TestNewProducesOddDimensionsWithWallBorder(t *testing.T) {
	m := New(1, rand.New(rand.NewSource(1)))

	height := len(m.Grid)
	width := len(m.Grid[0])

	if height%2 == 0 || width%2 == 0 {
		t.Fatalf("dimensions (%d,%d) not both odd", height, width)
	}

	for x := 0; x < width; x++ {
		if m.Grid[0][x] != Wall || m.Grid[height-1][x] != Wall {
			t.Fatalf("column %d border not wall", x)
		}
	}
	for y := 0; y < height; y++ {
		if m.Grid[y][0] != Wall || m.Grid[y][width-1] != Wall {
			t.Fatalf("row %d border not wall", y)
		}
	}
}

func TestAllOpenSpacesAreConnected(t *testing.T) {
	for seed := int64(0); seed < 32; seed++ {
		m := New(2, rand.New(rand.NewSource(seed)))

		if len(m.Spaces) < 2 {
			t.Fatalf("seed %d: expected multiple open spaces, got %d", seed, len(m.Spaces))
		}

		dist := m.distancesFrom(m.Spaces[0])
		if len(dist) != len(m.Spaces) {
			t.Fatalf("seed %d: reached %d of %d open cells from %v", seed, len(dist), len(m.Spaces), m.Spaces[0])
		}
	}
}

func TestWithExitPicksFarthestReachableCell(t *testing.T) {
	m := New(2, rand.New(rand.NewSource(7)))
	spawn := m.Spaces[0]
	m.WithExit(spawn)

	if m.ExitCoord == nil {
		t.Fatal("ExitCoord not set")
	}

	dist := m.distancesFrom(spawn)
	exitDist := dist[*m.ExitCoord]
	for _, d := range dist {
		if d > exitDist {
			t.Fatalf("found a cell at distance %d, farther than chosen exit at %d", d, exitDist)
		}
	}
}

func TestIsWayClearTreatsOutsideMazeAsClear(t *testing.T) {
	m := New(1, rand.New(rand.NewSource(3)))
	if !m.IsWayClear(-10, -10, 64) {
		t.Fatal("position outside maze should be clear")
	}
}

func TestIsWayClearDetectsWalls(t *testing.T) {
	m := New(1, rand.New(rand.NewSource(3)))
	// (0,0) is always a border wall cell.
	if m.IsWayClear(0.5*64, 0.5*64, 64) {
		t.Fatal("border wall cell should not be clear")
	}
}
