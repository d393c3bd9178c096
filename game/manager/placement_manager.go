package manager

import (
	"math-snake/game/types"

	"github.com/pkg/errors"
)

// ErrBoardFull is returned when the grid has fewer free cells than requested.
var ErrBoardFull = errors.New("not enough free cells on the board")

// samplingAttempts bounds rejection sampling before falling back to a draw
// from the enumerated free cells. Both draws are uniform over free cells.
const samplingAttempts = 64

type PlacementManager struct {
	grid types.Grid
	rng  types.Rand
}

func NewPlacementManager(grid types.Grid, rng types.Rand) *PlacementManager {
	return &PlacementManager{grid: grid, rng: rng}
}

// Place returns count distinct in-bounds cells, none of them in occupied.
func (pm *PlacementManager) Place(count int, occupied []types.Point) ([]types.Point, error) {
	taken := make([]bool, pm.grid.Cells())
	free := pm.grid.Cells()
	for _, p := range occupied {
		if !pm.grid.Contains(p) {
			continue
		}
		if i := pm.grid.Index(p); !taken[i] {
			taken[i] = true
			free--
		}
	}
	if free < count {
		return nil, errors.Wrapf(ErrBoardFull, "need %d cells, %d free on %dx%d",
			count, free, pm.grid.Width, pm.grid.Height)
	}

	placed := make([]types.Point, 0, count)
	for len(placed) < count {
		p := pm.sample(taken)
		taken[pm.grid.Index(p)] = true
		placed = append(placed, p)
	}
	return placed, nil
}

func (pm *PlacementManager) sample(taken []bool) types.Point {
	for attempt := 0; attempt < samplingAttempts; attempt++ {
		p := types.Point{
			X: pm.rng.Intn(pm.grid.Width),
			Y: pm.rng.Intn(pm.grid.Height),
		}
		if !taken[pm.grid.Index(p)] {
			return p
		}
	}

	// Crowded board: pick directly among the remaining cells.
	cells := make([]types.Point, 0, len(taken))
	for i, t := range taken {
		if !t {
			cells = append(cells, types.Point{X: i % pm.grid.Width, Y: i / pm.grid.Width})
		}
	}
	return cells[pm.rng.Intn(len(cells))]
}
