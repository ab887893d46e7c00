// Package viz renders chamber trajectories in the terminal.
//
//   - [Chart]: asciigraph line chart with the ambient reference line
//   - [Summary]: lipgloss panel of run statistics
//   - [Replay]: bubbletea model that plays a trajectory back sample by sample
package viz
