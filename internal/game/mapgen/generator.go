package mapgen

import (
	"math/rand"

	"github.com/mitchelldurbincs/FreckersSearch/internal/game/core"
)

// MapConfig holds configuration for random board generation
type MapConfig struct {
	LilyPadPercent int  // chance in percent that a free cell becomes a lily pad
	BlueCount      int  // number of blue pieces to place
	RedMaxRow      int  // the red piece is placed somewhere in rows 0..RedMaxRow
	Sparse         bool // leave Empty cells out of the board entirely
}

// DefaultMapConfig returns a configuration that usually produces solvable boards
func DefaultMapConfig() MapConfig {
	return MapConfig{
		LilyPadPercent: 45,
		BlueCount:      10,
		RedMaxRow:      2,
	}
}

// Generator builds boards with a deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new board generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a board with one red piece, the configured number of
// blue pieces, and lily pads scattered over the remaining cells
func (g *Generator) GenerateMap() *core.Board {
	pieces := make(map[core.Coordinate]core.CellState)

	red := g.placeRed()
	pieces[red] = core.Red
	g.placeBlues(pieces)

	board := core.NewBoard()
	for i := 0; i < core.BoardSize*core.BoardSize; i++ {
		c := core.FromIndex(i)
		if s, ok := pieces[c]; ok {
			board.Set(c, s)
			continue
		}
		if g.rng.Intn(100) < g.config.LilyPadPercent {
			board.Set(c, core.LilyPad)
		} else if !g.config.Sparse {
			board.Set(c, core.Empty)
		}
	}
	return board
}

func (g *Generator) placeRed() core.Coordinate {
	maxRow := g.config.RedMaxRow
	if maxRow < 0 || maxRow >= core.BoardSize {
		maxRow = core.BoardSize - 1
	}
	return core.NewCoordinate(g.rng.Intn(maxRow+1), g.rng.Intn(core.BoardSize))
}

func (g *Generator) placeBlues(pieces map[core.Coordinate]core.CellState) {
	want := g.config.BlueCount
	placed := 0

	// Use a maximum attempt counter to avoid infinite loops
	maxAttempts := want * 10
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		c := core.FromIndex(g.rng.Intn(core.BoardSize * core.BoardSize))
		if _, taken := pieces[c]; taken {
			continue
		}
		pieces[c] = core.Blue
		placed++
	}
}
