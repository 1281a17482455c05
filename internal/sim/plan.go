// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package sim

import (
	"fmt"
	"time"

	"pgregory.net/rapid"
)

type ActorKind int

const (
	Producer ActorKind = iota
	Consumer
	Remover
)

func (k ActorKind) String() string {
	switch k {
	case Producer:
		return "Producer"
	case Consumer:
		return "Consumer"
	case Remover:
		return "Remover"
	default:
		return fmt.Sprintf("ActorKind(%d)", int(k))
	}
}

type Actor struct {
	ID   int
	Kind ActorKind
	// Simulated delay before each step.
	Delays []time.Duration
}

type Plan struct {
	Config *Config
	Actors []Actor
	// Zero means unlimited.
	Capacity  int64
	StepCount int
}

// NewPlan draws a set of actors and their schedules.
func NewPlan(t *rapid.T, config *Config) *Plan {
	plan := &Plan{
		Config: config,
	}

	if BiasedBool(config.CapacityProbability).Draw(t, "Plan.LimitCapacity") {
		plan.Capacity = int64(config.Capacity.Draw(t, "Plan.Capacity"))
	}

	addActors := func(kind ActorKind, count int) {
		for range count {
			id := len(plan.Actors)
			name := fmt.Sprintf("%v#%d", kind, id)
			actor := Actor{
				ID:     id,
				Kind:   kind,
				Delays: make([]time.Duration, config.Steps.Draw(t, name+".Steps")),
			}
			for i := range actor.Delays {
				actor.Delays[i] = config.StepDelay.Draw(t, fmt.Sprintf("%s.Delay[%d]", name, i))
			}
			plan.StepCount += len(actor.Delays)
			plan.Actors = append(plan.Actors, actor)
		}
	}
	addActors(Producer, config.Producers.Draw(t, "Plan.Producers"))
	addActors(Consumer, config.Consumers.Draw(t, "Plan.Consumers"))
	addActors(Remover, config.Removers.Draw(t, "Plan.Removers"))

	t.Logf("plan: %d actors, %d steps, capacity %d", len(plan.Actors), plan.StepCount, plan.Capacity)
	return plan
}
