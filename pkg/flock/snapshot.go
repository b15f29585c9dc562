package flock

// BoidState is the per-agent state a presentation shell needs: where the
// boid is and which way it faces. Nothing else leaves the core.
type BoidState struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// Snapshot is the renderable view of the flock after a tick.
type Snapshot struct {
	Tick  uint64      `json:"tick"`
	Boids []BoidState `json:"boids"`
}

// Snapshot copies the current per-agent state out of the simulation, in
// agent order.
func (f *Flock) Snapshot() *Snapshot {
	snap := &Snapshot{
		Tick:  f.tick,
		Boids: make([]BoidState, len(f.agents)),
	}
	for i, a := range f.agents {
		snap.Boids[i] = BoidState{X: a.Pos.X, Y: a.Pos.Y, Heading: a.Heading}
	}
	return snap
}
