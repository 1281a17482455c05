// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package sim provides a way to generate and execute simulated workloads
// against a fifoish queue. A plan consists of producers, consumers and
// removers, each performing a number of steps separated by simulated delays.
// Running a plan interleaves the steps in simulated-time order, breaking ties
// with a drawn permutation, and checks every result against a model of the
// queue's expected contents. New plans are generated according to a set of
// configuration parameters that determine the number of actors and the shape
// of their schedules.
package sim
