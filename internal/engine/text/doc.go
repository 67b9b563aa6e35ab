// Package text provides the value types of the editing core: code-unit
// ranges, caret positions with affinity, directional selections, and the
// authoritative editing value (text + selection + composing range).
//
// All offsets are UTF-16 code-unit indexes into the owning text, not
// byte or rune indexes. Every type in this package is an immutable
// value; mutation is expressed by constructing a new value.
package text
