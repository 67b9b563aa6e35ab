package key

// Chord identifies a key independent of modifiers: a special key, or
// KeyRune plus a lowercase character. Chords are how pressed-key
// tracking and the interesting-key set name individual keys.
type Chord struct {
	Key  Key
	Rune rune
}

// RuneChord creates the chord for a character key.
func RuneChord(r rune) Chord {
	return Chord{Key: KeyRune, Rune: r}
}

// Set is an immutable set of chords.
type Set map[Chord]struct{}

// NewSet creates a set from the given chords.
func NewSet(chords ...Chord) Set {
	s := make(Set, len(chords))
	for _, c := range chords {
		s[c] = struct{}{}
	}
	return s
}

// Has returns true if the chord is in the set.
func (s Set) Has(c Chord) bool {
	_, ok := s[c]
	return ok
}

// Union returns a new set containing both sets' chords.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// Filter decides whether a key event should be considered an editing
// action. An event is actionable only if the pressed key is in the
// interesting set, at most one non-modifier key is down, and nothing
// outside the interesting set plus the platform's modifier keys is
// down. This guards against unrelated combos triggering an edit.
type Filter struct {
	interesting Set
	modifiers   Set
}

// NewFilter builds a filter from the interesting-key set and the
// platform's allowed modifier keys. Both sets are constructed once at
// startup and never mutated.
func NewFilter(interesting, modifiers Set) Filter {
	return Filter{interesting: interesting, modifiers: modifiers}
}

// Actionable reports whether the event should be routed to the editing
// engine, given the set of currently pressed keys.
func (f Filter) Actionable(ev Event, down Set) bool {
	if !f.interesting.Has(ev.Chord()) {
		return false
	}
	nonModifier := 0
	for c := range down {
		if f.modifiers.Has(c) {
			continue
		}
		if !f.interesting.Has(c) {
			return false
		}
		nonModifier++
	}
	return nonModifier <= 1
}

// Interesting returns the chords of the keys the editing core reacts
// to: the arrows, forward delete, backspace, and the four clipboard
// shortcut letters.
func Interesting() Set {
	return NewSet(
		Chord{Key: KeyUp},
		Chord{Key: KeyDown},
		Chord{Key: KeyLeft},
		Chord{Key: KeyRight},
		Chord{Key: KeyDelete},
		Chord{Key: KeyBackspace},
		RuneChord('a'),
		RuneChord('c'),
		RuneChord('v'),
		RuneChord('x'),
	)
}

// ModifierChords returns the chords for the given modifier keys.
func ModifierChords(keys ...Key) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[Chord{Key: k}] = struct{}{}
	}
	return s
}
