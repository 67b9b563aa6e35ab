// Package layout defines the paragraph-layout contract the editing
// core consumes: line geometry, caret rectangles, word and line
// boundaries, and glyph boxes for a selection.
//
// The shaping engine behind the contract is deliberately opaque. The
// package ships one concrete implementation, Grid, a fixed-advance
// layout used by tests and terminal hosts.
package layout
