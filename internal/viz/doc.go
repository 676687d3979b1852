// Package viz renders control runs in the terminal.
//
// [Model] is a Bubble Tea program that steps a [Source] (a replay or a
// simulation) on a timer and shows the trajectory on a Braille [Canvas]
// next to the current command and a heading chart. [Report] produces the
// same pictures as plain text for non-interactive use.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step
//	+/-   - Cycles per tick
//	T     - Cycle color themes
//	?     - Show help
package viz
