// Package stair lays out the step lines of a stair on its plan boundaries.
//
// Computation runs in a fixed order:
//
//  1. OptimalStepNumber picks the step count from Blondel's law.
//  2. SampleWalk spaces the step lines evenly along the walkpath.
//  3. ProjectRadiating extends them across the inside and outside strings.
//  4. ParallelOffset derives the overlap, riser and back lines.
//  5. BalanceAll redistributes the lines through the turn with the harrow
//     method and ParallelOffset runs again on the result.
//  6. BuildTreads outlines the tread boards.
//
// Compute runs the whole pipeline. Missing geometry is recorded as absent
// endpoints; only a missing walkpath or base step is an error.
package stair
