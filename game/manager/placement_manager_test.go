package manager

import (
	"testing"

	"math-snake/game/types"

	"github.com/pkg/errors"
)

func TestPlaceDistinctAndDisjoint(t *testing.T) {
	grid := types.Grid{Width: 20, Height: 20}
	occupied := []types.Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}, {X: 8, Y: 11}}
	pm := NewPlacementManager(grid, seeded(11))
	for i := 0; i < 500; i++ {
		placed, err := pm.Place(4, occupied)
		if err != nil {
			t.Fatalf("place: %v", err)
		}
		if len(placed) != 4 {
			t.Fatalf("got %d cells", len(placed))
		}
		seen := map[types.Point]bool{}
		for _, p := range placed {
			if !grid.Contains(p) {
				t.Fatalf("%v outside grid", p)
			}
			if seen[p] {
				t.Fatalf("duplicate %v in %v", p, placed)
			}
			seen[p] = true
			for _, o := range occupied {
				if o == p {
					t.Fatalf("%v overlaps occupied", p)
				}
			}
		}
	}
}

func TestPlaceFillsCrowdedBoard(t *testing.T) {
	grid := types.Grid{Width: 3, Height: 3}
	var occupied []types.Point
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x+y < 4 && !(x == 2 && y == 1) {
				occupied = append(occupied, types.Point{X: x, Y: y})
			}
		}
	}
	// Free cells: (2,1) and (2,2). A script that keeps hitting (0,0) forces the fallback.
	pm := NewPlacementManager(grid, &scriptedRand{vals: []int{0}})
	placed, err := pm.Place(2, occupied)
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if len(placed) != 2 || placed[0] == placed[1] {
		t.Fatalf("unexpected placement %v", placed)
	}
	for _, p := range placed {
		if p != (types.Point{X: 2, Y: 1}) && p != (types.Point{X: 2, Y: 2}) {
			t.Fatalf("placed on occupied cell %v", p)
		}
	}
}

func TestPlaceBoardFull(t *testing.T) {
	grid := types.Grid{Width: 2, Height: 2}
	pm := NewPlacementManager(grid, seeded(12))
	_, err := pm.Place(4, []types.Point{{X: 0, Y: 0}})
	if !errors.Is(err, ErrBoardFull) {
		t.Fatalf("expected ErrBoardFull, got %v", err)
	}
}

func TestPlaceIgnoresOutOfBoundsOccupancy(t *testing.T) {
	grid := types.Grid{Width: 2, Height: 2}
	pm := NewPlacementManager(grid, seeded(13))
	placed, err := pm.Place(4, []types.Point{{X: -1, Y: 0}, {X: 2, Y: 2}})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if len(placed) != 4 {
		t.Fatalf("got %v", placed)
	}
}
