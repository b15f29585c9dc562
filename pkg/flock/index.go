package flock

import (
	"math"

	"github.com/jlajr36/FlockingSimulation/pkg/geometry"
)

// NeighborIndex answers coarse neighbor queries for the steering rules.
// Candidates must return a superset of every agent within the largest
// configured radius of pos; the rules apply the exact distance tests
// themselves, so an index is free to over-approximate.
type NeighborIndex interface {
	Rebuild(agents []*Agent)
	Candidates(pos geometry.Vector2D) []*Agent
}

// BruteIndex is the O(n²) baseline: every agent is a candidate for every
// query. Useful as a reference for correctness tests and for tiny flocks.
type BruteIndex struct {
	agents []*Agent
}

func (b *BruteIndex) Rebuild(agents []*Agent) {
	b.agents = agents
}

func (b *BruteIndex) Candidates(geometry.Vector2D) []*Agent {
	return b.agents
}

type gridKey struct {
	x, y int
}

// GridIndex hashes agents into square cells at least as large as the
// widest query radius, so scanning the 3x3 block of cells around a
// position covers every possible neighbor.
type GridIndex struct {
	cellSize float64
	grid     map[gridKey][]*Agent
	scratch  []*Agent
}

func NewGridIndex(cfg *Config) *GridIndex {
	return &GridIndex{
		cellSize: cellSizeFor(cfg),
		grid:     make(map[gridKey][]*Agent),
	}
}

// cellSizeFor takes the largest radius so the 3x3 scan covers everything,
// clamped to a minimum of 10 to avoid tiny cells.
func cellSizeFor(cfg *Config) float64 {
	size := math.Max(cfg.NeighborRadius, cfg.SeparationRadius)
	return math.Max(size, 10.0)
}

func (g *GridIndex) Rebuild(agents []*Agent) {
	// Reset slices to length 0 but keep capacity, so the underlying
	// arrays are reused and the rebuild allocates almost nothing.
	for k := range g.grid {
		g.grid[k] = g.grid[k][:0]
	}

	for _, a := range agents {
		key := g.keyFor(a.Pos)
		g.grid[key] = append(g.grid[key], a)
	}
}

// Candidates returns every agent in the 3x3 cell block around pos.
// The returned slice is only valid until the next Candidates or Rebuild
// call; callers must not hold on to it across queries.
func (g *GridIndex) Candidates(pos geometry.Vector2D) []*Agent {
	center := g.keyFor(pos)
	g.scratch = g.scratch[:0]

	for i := center.x - 1; i <= center.x+1; i++ {
		for j := center.y - 1; j <= center.y+1; j++ {
			if agents, ok := g.grid[gridKey{x: i, y: j}]; ok {
				g.scratch = append(g.scratch, agents...)
			}
		}
	}
	return g.scratch
}

func (g *GridIndex) keyFor(pos geometry.Vector2D) gridKey {
	return gridKey{x: int(pos.X / g.cellSize), y: int(pos.Y / g.cellSize)}
}
