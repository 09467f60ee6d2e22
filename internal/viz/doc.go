// Package viz provides the terminal front end of dynmap.
//
// The interactive program built by [RunInteractive] lists the registered
// models, lets the sweep be tuned and then opens the explorer [Model]:
// the visible control window is sampled one chunk per frame into a
// density accumulator, which is shown as a braille [Canvas] next to the
// analysis of the orbit under the cursor.
//
// # Key Bindings
//
//	h/l   - Move the cursor one dot column
//	+/-   - Zoom around the cursor
//	[ ]   - Pan the window
//	R     - Reset the window
//	T     - Cycle color themes
//	S     - Save the accumulator as PNG
//	?     - Show help overlay
//
// [FromImage] turns any rendered picture into braille, which the CLI
// uses for previews. Themes double as picture palettes via
// [Theme.Palette].
package viz
