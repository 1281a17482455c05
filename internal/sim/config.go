// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import "time"

var DefaultConfig = Config{
	Producers: BiasedIntConfig{Min: 1, Med: 2, Max: 4},
	Consumers: BiasedIntConfig{Min: 0, Med: 2, Max: 4},
	Removers:  BiasedIntConfig{Min: 0, Med: 1, Max: 3},
	Steps:     BiasedIntConfig{Min: 1, Med: 10, Max: 30},
	StepDelay: BiasedDurationConfig{
		Min: 0,
		Med: 10 * time.Microsecond,
		Max: 100 * time.Microsecond,
	},
	Capacity:              BiasedIntConfig{Min: 1, Med: 8, Max: 64},
	CapacityProbability:   0.25,
	RemoveLiveProbability: 0.75,
}

type Config struct {
	Producers BiasedIntConfig
	Consumers BiasedIntConfig
	Removers  BiasedIntConfig

	// Number of steps each actor performs.
	Steps BiasedIntConfig

	// Simulated time before each step.
	StepDelay BiasedDurationConfig

	// Drawn only when the plan is chosen to be capacity-limited.
	Capacity            BiasedIntConfig
	CapacityProbability float64

	// Chance that a remover picks an item still in the queue rather than any
	// item ever enqueued.
	RemoveLiveProbability float64
}
