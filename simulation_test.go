// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package fifoish_test

import (
	"testing"

	"github.com/petenewcomb/fifoish-go/internal/sim"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBySimulation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		config := sim.DefaultConfig
		if testing.Short() {
			config.Steps.Med /= 2
			config.Steps.Max /= 2
		}

		plan := sim.NewPlan(t, &config)
		result := sim.Run(t, plan)

		t.Logf("%+v", *result)

		// Every accepted item was resolved exactly once.
		chk := require.New(t)
		chk.Equal(result.Enqueued, result.Dequeued+result.Removed+result.Remaining)
		chk.LessOrEqual(result.Enqueued+result.Rejected+result.Dequeued+result.EmptyPolls+
			result.Removed+result.MissedRemovals, plan.StepCount)
	})
}
