package formatter

import (
	"regexp"
	"testing"

	"github.com/dshills/fieldkit/internal/engine/text"
)

func proposed(txt string, caret int) text.EditingValue {
	return text.NewEditingValue(txt, text.CollapsedSelection(caret), text.EmptyRange)
}

func TestLengthLimiter(t *testing.T) {
	f := LengthLimiter{Max: 5}

	// Under the limit passes through.
	v := f.Format(proposed("abcd", 4), proposed("abcde", 5))
	if v.Text != "abcde" {
		t.Errorf("text = %q", v.Text)
	}

	// Over the limit keeps the old value when the old value fits.
	v = f.Format(proposed("abcde", 5), proposed("abcdef", 6))
	if v.Text != "abcde" {
		t.Errorf("text = %q, want old value kept", v.Text)
	}

	// A paste that blows past the limit truncates when the old value
	// itself was over (programmatic SetValue).
	v = f.Format(proposed("abcdefgh", 8), proposed("abcdefghij", 10))
	if v.Text != "abcde" {
		t.Errorf("text = %q, want truncated", v.Text)
	}
	if v.Selection.Extent != 5 {
		t.Errorf("caret = %d, want clamped to 5", v.Selection.Extent)
	}
}

func TestLengthLimiterZeroIsUnlimited(t *testing.T) {
	f := LengthLimiter{}
	v := f.Format(proposed("", 0), proposed("anything at all", 15))
	if v.Text != "anything at all" {
		t.Errorf("text = %q", v.Text)
	}
}

func TestSingleLine(t *testing.T) {
	f := SingleLine{}
	v := f.Format(proposed("ab", 2), proposed("a\r\nb\nc", 6))
	if v.Text != "abc" {
		t.Errorf("text = %q, want line breaks stripped", v.Text)
	}
	if v.Selection.Extent != 3 {
		t.Errorf("caret = %d, want clamped", v.Selection.Extent)
	}
}

func TestAllowPattern(t *testing.T) {
	f := AllowPattern{Pattern: regexp.MustCompile(`^[0-9]*$`)}

	v := f.Format(proposed("12", 2), proposed("123", 3))
	if v.Text != "123" {
		t.Errorf("matching edit rejected: %q", v.Text)
	}
	v = f.Format(proposed("12", 2), proposed("12a", 3))
	if v.Text != "12" {
		t.Errorf("non-matching edit accepted: %q", v.Text)
	}
}

func TestChainOrder(t *testing.T) {
	upper := Func(func(old, p text.EditingValue) text.EditingValue {
		return p
	})
	limit := LengthLimiter{Max: 3}
	c := Chain{upper, limit}

	v := c.Format(proposed("abc", 3), proposed("abcd", 4))
	if v.Text != "abc" {
		t.Errorf("chain result = %q", v.Text)
	}
}

func TestRewriteClearsComposing(t *testing.T) {
	f := SingleLine{}
	in := text.NewEditingValue("a\nb", text.CollapsedSelection(3), text.NewRange(0, 3))
	v := f.Format(text.EmptyValue, in)
	if v.Composing.IsValid() {
		t.Errorf("composing = %s, want cleared by rewrite", v.Composing)
	}
}
