// Package flock simulates emergent flocking motion for a population of
// autonomous agents. Boids is an artificial life program, developed by
// Craig Reynolds in 1986, which simulates the flocking behaviour of birds
// through three local rules: separation, alignment and cohesion.
// https://en.wikipedia.org/wiki/Boids
package flock

import (
	"github.com/jlajr36/FlockingSimulation/pkg/geometry"
)

// Agent is a single boid. Pos and Vel are exported so renderers can read
// them; Heading is derived from Vel after every integration and carries no
// simulation meaning of its own. The acceleration accumulator is reset at
// the end of each tick and never survives across ticks.
type Agent struct {
	Pos     geometry.Vector2D
	Vel     geometry.Vector2D
	Heading float64

	acc geometry.Vector2D
}

// Separate steers away from agents crowding inside the separation radius.
// Closer neighbors push harder (their away vectors are scaled by 1/distance).
// Returns the zero vector when nothing is in range or the contributions
// cancel exactly.
func (a *Agent) Separate(candidates []*Agent, cfg *Config) geometry.Vector2D {
	var steer geometry.Vector2D
	count := 0

	for _, other := range candidates {
		d := a.Pos.DistanceTo(other.Pos)
		// d > 0 excludes the agent itself and any exact-coincident boid.
		if d > 0 && d < cfg.SeparationRadius {
			away := a.Pos.Sub(other.Pos).Normalize().Mul(1 / d)
			steer = steer.Add(away)
			count++
		}
	}

	if count > 0 {
		steer = steer.Mul(1 / float64(count))
	}
	if steer.Len() == 0 {
		return geometry.Vector2D{}
	}

	return steer.WithLen(cfg.MaxSpeed).Sub(a.Vel).Limit(cfg.MaxForce)
}

// Align steers toward the average velocity of agents within the neighbor
// radius. Returns the zero vector when no neighbor is in range.
func (a *Agent) Align(candidates []*Agent, cfg *Config) geometry.Vector2D {
	var sum geometry.Vector2D
	count := 0

	for _, other := range candidates {
		d := a.Pos.DistanceTo(other.Pos)
		if d > 0 && d < cfg.NeighborRadius {
			sum = sum.Add(other.Vel)
			count++
		}
	}

	if count == 0 {
		return geometry.Vector2D{}
	}

	desired := sum.Mul(1 / float64(count)).WithLen(cfg.MaxSpeed)
	return desired.Sub(a.Vel).Limit(cfg.MaxForce)
}

// Cohere steers toward the average position of agents within the neighbor
// radius. When the average position coincides with the agent itself the
// desired direction normalizes to zero and the steering degrades to plain
// braking, which Limit then caps.
func (a *Agent) Cohere(candidates []*Agent, cfg *Config) geometry.Vector2D {
	var sum geometry.Vector2D
	count := 0

	for _, other := range candidates {
		d := a.Pos.DistanceTo(other.Pos)
		if d > 0 && d < cfg.NeighborRadius {
			sum = sum.Add(other.Pos)
			count++
		}
	}

	if count == 0 {
		return geometry.Vector2D{}
	}

	target := sum.Mul(1 / float64(count))
	desired := target.Sub(a.Pos).WithLen(cfg.MaxSpeed)
	return desired.Sub(a.Vel).Limit(cfg.MaxForce)
}

// ApplyForce accumulates a steering force into the agent's acceleration.
func (a *Agent) ApplyForce(force geometry.Vector2D) {
	a.acc = a.acc.Add(force)
}

// Integrate applies the accumulated acceleration and moves the agent.
// Velocity is renormalized to exactly maxSpeed rather than clamped, so a
// boid never coasts below full speed. The one exception: if velocity and
// acceleration summed to the exact zero vector the boid stays put and
// keeps its previous heading for this tick.
func (a *Agent) Integrate(maxSpeed float64) {
	a.Vel = a.Vel.Add(a.acc).WithLen(maxSpeed)
	a.Pos = a.Pos.Add(a.Vel)
	a.acc = geometry.Vector2D{}
	if a.Vel.LenSqr() > 0 {
		a.Heading = a.Vel.Angle()
	}
}

// Wrap teleports an out-of-range agent to the opposite edge, one axis at
// a time. Must run after Integrate, once per tick.
func (a *Agent) Wrap(width, height float64) {
	a.Pos.X = wrapCoord(a.Pos.X, width)
	a.Pos.Y = wrapCoord(a.Pos.Y, height)
}

// wrapCoord resets a coordinate at or past the bound to exactly 0 and a
// coordinate below 0 to the bound; the overshoot amount is deliberately
// discarded rather than carried over modulo-style.
func wrapCoord(v, bound float64) float64 {
	if v < 0 {
		return bound
	}
	if v >= bound {
		return 0
	}
	return v
}
