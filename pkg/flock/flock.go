package flock

import (
	"math/rand/v2"
	"time"

	"github.com/jlajr36/FlockingSimulation/pkg/geometry"
)

// Flock owns the full population and drives one simulation tick at a time.
// Agents keep their creation order for the whole run; nothing is added or
// removed after New.
type Flock struct {
	cfg    *Config
	agents []*Agent
	index  NeighborIndex
	tick   uint64
}

type Option func(*Flock)

// WithIndex replaces the default spatial grid with another neighbor index,
// e.g. a BruteIndex for reference runs.
func WithIndex(idx NeighborIndex) Option {
	return func(f *Flock) { f.index = idx }
}

// New spawns cfg.NumBoids agents at uniformly random positions inside the
// world with small random integer velocities.
func New(cfg *Config, opts ...Option) *Flock {
	f := &Flock{cfg: cfg}
	for _, opt := range opts {
		opt(f)
	}
	if f.index == nil {
		f.index = NewGridIndex(cfg)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	f.agents = make([]*Agent, cfg.NumBoids)
	for i := range f.agents {
		f.agents[i] = newAgent(rng, cfg)
	}
	return f
}

func newAgent(rng *rand.Rand, cfg *Config) *Agent {
	// Integer velocity components in [-2, 2]; the occasional all-zero
	// draw is allowed and resolves through the zero-velocity rule in
	// Integrate.
	vel := geometry.Vector2D{
		X: float64(rng.IntN(5) - 2),
		Y: float64(rng.IntN(5) - 2),
	}
	return &Agent{
		Pos: geometry.Vector2D{
			X: rng.Float64() * cfg.WorldWidth,
			Y: rng.Float64() * cfg.WorldHeight,
		},
		Vel:     vel,
		Heading: vel.Angle(),
	}
}

// Step advances the simulation by one tick.
//
// The tick uses full-snapshot semantics: phase one evaluates every agent's
// three steering rules against the positions and velocities the flock had
// at the start of the tick (the rules only ever write the agent's own
// acceleration), and phase two integrates and wraps every agent. The
// result is therefore independent of agent order, unlike an in-place
// sweep where each boid would see the already-moved positions of the
// boids updated before it.
func (f *Flock) Step() {
	f.index.Rebuild(f.agents)

	for _, a := range f.agents {
		candidates := f.index.Candidates(a.Pos)

		sep := a.Separate(candidates, f.cfg).Mul(f.cfg.SeparationWeight)
		ali := a.Align(candidates, f.cfg).Mul(f.cfg.AlignmentWeight)
		coh := a.Cohere(candidates, f.cfg).Mul(f.cfg.CohesionWeight)

		a.ApplyForce(sep)
		a.ApplyForce(ali)
		a.ApplyForce(coh)
	}

	for _, a := range f.agents {
		a.Integrate(f.cfg.MaxSpeed)
		a.Wrap(f.cfg.WorldWidth, f.cfg.WorldHeight)
	}

	f.tick++
}

// Agents exposes the live agent slice for renderers. Callers must treat
// it as read-only.
func (f *Flock) Agents() []*Agent {
	return f.agents
}

// Tick returns the number of completed simulation steps.
func (f *Flock) Tick() uint64 {
	return f.tick
}
