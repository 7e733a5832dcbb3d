// Package viz renders extracted plot data in the terminal.
//
//   - [Inspect]: header and per-plot summary of a dataset
//   - [Chart]: ASCII line chart of a single series
//   - [Viewer]: Bubble Tea program paging through solutions and plots
//
// # Key Bindings
//
//	j/k, down/up    - next/previous plot
//	l/h, right/left - next/previous solution
//	q, ctrl+c       - quit
package viz
