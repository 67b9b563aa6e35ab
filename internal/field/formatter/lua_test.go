package formatter

import (
	"errors"
	"strings"
	"testing"
)

func TestLuaFormatter(t *testing.T) {
	f, err := NewLua(`
function format(old, new)
  return string.upper(new)
end`)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer f.Close()

	v := f.Format(proposed("ab", 2), proposed("abc", 3))
	if v.Text != "ABC" {
		t.Errorf("text = %q, want %q", v.Text, "ABC")
	}
}

func TestLuaFormatterRejectsByReturningOld(t *testing.T) {
	f, err := NewLua(`
function format(old, new)
  if string.len(new) > 3 then
    return old
  end
  return new
end`)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer f.Close()

	v := f.Format(proposed("abc", 3), proposed("abcd", 4))
	if v.Text != "abc" {
		t.Errorf("text = %q, want old value", v.Text)
	}
}

func TestLuaMissingFormatFunction(t *testing.T) {
	_, err := NewLua(`x = 1`)
	if !errors.Is(err, ErrNoFormatFunction) {
		t.Errorf("error = %v, want ErrNoFormatFunction", err)
	}
}

func TestLuaSyntaxError(t *testing.T) {
	_, err := NewLua(`function format(`)
	if err == nil {
		t.Fatal("expected compile error")
	}
	if !strings.Contains(err.Error(), "lua") {
		t.Errorf("error = %v, want lua context", err)
	}
}

func TestLuaRuntimeErrorPassesThrough(t *testing.T) {
	f, err := NewLua(`
function format(old, new)
  error("boom")
end`)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer f.Close()

	// A scripting error must never eat the user's keystroke.
	v := f.Format(proposed("a", 1), proposed("ab", 2))
	if v.Text != "ab" {
		t.Errorf("text = %q, want proposed value untouched", v.Text)
	}
}

func TestLuaNonStringReturnPassesThrough(t *testing.T) {
	f, err := NewLua(`
function format(old, new)
  return nil
end`)
	if err != nil {
		t.Fatalf("NewLua: %v", err)
	}
	defer f.Close()

	v := f.Format(proposed("a", 1), proposed("ab", 2))
	if v.Text != "ab" {
		t.Errorf("text = %q, want proposed value untouched", v.Text)
	}
}
