// Package core holds the settings, sentinel errors and small numeric helpers
// shared by the wave-packet stages.
//
// Every stage takes a [Config] built with functional options:
//
//	cfg := core.ApplyOptions(core.WithNumSteps(4096), core.WithStdDevSpanK(40))
//
// Degenerate inputs (zero width, fewer than two components, empty grids)
// are reported with [ErrDegenerateConfiguration] before any arithmetic runs.
package core
