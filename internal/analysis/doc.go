// Package analysis measures integrator output against reference solutions.
//
//   - [MaxAbsError]: L-infinity distance between a trajectory and a closed form
//   - [ConvergenceOrder]: observed order from step halving
//   - [SettlingTime]: first time a trajectory stays inside a band
package analysis
