package flock

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config holds the tunable constants of a simulation run. It is read-only
// once handed to New, so several flocks with different settings can run
// side by side.
type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population
	NumBoids int `json:"numBoids"`

	// Kinematics
	MaxSpeed float64 `json:"maxSpeed"` // Every boid moves at exactly this speed
	MaxForce float64 `json:"maxForce"` // Cap on each steering force

	// Interaction Radii
	NeighborRadius   float64 `json:"neighborRadius"`   // Alignment and cohesion range
	SeparationRadius float64 `json:"separationRadius"` // Personal space radius

	// Rule Weights
	SeparationWeight float64 `json:"separationWeight"`
	AlignmentWeight  float64 `json:"alignmentWeight"`
	CohesionWeight   float64 `json:"cohesionWeight"`

	// Seed for the random spawn. Zero means time-derived, so runs are
	// only reproducible when a seed is set explicitly.
	Seed uint64 `json:"seed,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:       1200,
		WorldHeight:      800,
		NumBoids:         1000,
		MaxSpeed:         2.5,
		MaxForce:         0.1,
		NeighborRadius:   100.0,
		SeparationRadius: 20.0,
		SeparationWeight: 0.2,
		AlignmentWeight:  0.1,
		CohesionWeight:   0.5,
	}
}

// LoadConfig loads configuration from a JSON file and validates it against the schema.
// The schema enforces that every dimension, radius, speed and weight is positive.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Validate the raw document before trusting it
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into the struct
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
