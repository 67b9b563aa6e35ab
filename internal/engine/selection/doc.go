// Package selection turns navigation intents into new selections. The
// engine is pure logic over (text, selection) pairs: word, line and
// vertical movement, word-at-offset selection, clipboard shortcut
// actions, and delete. Boundary data comes from the paragraph layout;
// when the layout has no boundary for a query the triggering action is
// a no-op, never an error.
package selection
