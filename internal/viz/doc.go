// Package viz provides the terminal front end for the physics demos.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: demo menu with sparkline previews
//   - [Model]: live view of one demo session, one asciigraph plot per panel
//   - [Canvas]: Braille-based pixel canvas used for 2-D fields
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Tab       - Select next parameter
//	Up/Down   - Move the selected slider one step
//	PgUp/PgDn - Move the selected slider ten steps
//	R         - Restore default parameters
//	F         - Toggle shade/braille field view
//	E         - Export the current frame
//	T         - Cycle color themes
//	?         - Show help overlay
//	Esc       - Back to the menu
//
// Every slider move recomputes the whole frame before the next redraw. When
// a recompute fails, the error is shown in the side bar and the previous
// figure stays on screen.
package viz
