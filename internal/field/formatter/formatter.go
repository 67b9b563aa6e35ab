// Package formatter provides the ordered input-formatter pipeline run
// over every edit before it is committed. Each formatter sees the
// previous value and the proposed value and returns a possibly
// modified value; formatters are applied sequentially in
// configuration order.
package formatter

import (
	"regexp"
	"strings"

	"github.com/dshills/fieldkit/internal/engine/text"
)

// Formatter rewrites a proposed editing value.
type Formatter interface {
	// Format receives the committed previous value and the proposed
	// new value, and returns the value to carry forward.
	Format(old, proposed text.EditingValue) text.EditingValue
}

// Func adapts a function to the Formatter interface.
type Func func(old, proposed text.EditingValue) text.EditingValue

// Format implements Formatter.
func (f Func) Format(old, proposed text.EditingValue) text.EditingValue {
	return f(old, proposed)
}

// Chain applies formatters in order.
type Chain []Formatter

// Format implements Formatter.
func (c Chain) Format(old, proposed text.EditingValue) text.EditingValue {
	v := proposed
	for _, f := range c {
		v = f.Format(old, v)
	}
	return v
}

// LengthLimiter truncates text beyond Max code units, keeping the old
// value when an edit would exceed the limit.
type LengthLimiter struct {
	// Max is the maximum text length in code units. Zero means no
	// limit.
	Max int
}

// Format implements Formatter.
func (l LengthLimiter) Format(old, proposed text.EditingValue) text.EditingValue {
	if l.Max <= 0 || proposed.UnitLen() <= l.Max {
		return proposed
	}
	if old.UnitLen() <= l.Max {
		return old
	}
	truncated := text.SliceUnits(proposed.Text, 0, l.Max)
	return rewriteText(proposed, truncated)
}

// SingleLine strips line breaks, keeping the field on one line.
type SingleLine struct{}

// Format implements Formatter.
func (SingleLine) Format(old, proposed text.EditingValue) text.EditingValue {
	if !strings.ContainsAny(proposed.Text, "\r\n") {
		return proposed
	}
	replacer := strings.NewReplacer("\r\n", "", "\r", "", "\n", "")
	return rewriteText(proposed, replacer.Replace(proposed.Text))
}

// AllowPattern rejects edits whose text does not match the pattern,
// reverting to the previous value.
type AllowPattern struct {
	Pattern *regexp.Regexp
}

// Format implements Formatter.
func (a AllowPattern) Format(old, proposed text.EditingValue) text.EditingValue {
	if a.Pattern == nil || a.Pattern.MatchString(proposed.Text) {
		return proposed
	}
	return old
}

// rewriteText replaces the text of a value, clamping the selection and
// dropping the composing range, which a rewrite invalidates.
func rewriteText(v text.EditingValue, txt string) text.EditingValue {
	n := text.UnitLen(txt)
	sel := v.Selection
	if sel.IsValid() {
		if sel.Base > n {
			sel = sel.WithBase(n)
		}
		if sel.Extent > n {
			sel = sel.WithExtent(n)
		}
	}
	return text.NewEditingValue(txt, sel, text.EmptyRange)
}
