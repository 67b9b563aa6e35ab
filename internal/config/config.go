// Package config loads fieldkit configuration from TOML files and
// converts it into the runtime types the editing core consumes. A
// missing file is not an error; every knob has a sensible default.
package config

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/fieldkit/internal/engine/selection"
	"github.com/dshills/fieldkit/internal/field"
	"github.com/dshills/fieldkit/internal/field/formatter"
	"github.com/dshills/fieldkit/internal/input/ime"
)

// Config is the on-disk configuration shape.
type Config struct {
	Field     FieldSection     `toml:"field"`
	Keyboard  KeyboardSection  `toml:"keyboard"`
	Clipboard ClipboardSection `toml:"clipboard"`
	Caret     CaretSection     `toml:"caret"`
	Scroll    ScrollSection    `toml:"scroll"`
	Platform  PlatformSection  `toml:"platform"`
	Format    FormatSection    `toml:"format"`
}

// FieldSection configures the field's basic behavior.
type FieldSection struct {
	ReadOnly           bool   `toml:"read_only"`
	Obscure            bool   `toml:"obscure"`
	ObscuringCharacter string `toml:"obscuring_character"`
	Multiline          bool   `toml:"multiline"`
}

// KeyboardSection configures the platform keyboard request.
type KeyboardSection struct {
	Type           string `toml:"type"`
	Action         string `toml:"action"`
	Autocorrect    bool   `toml:"autocorrect"`
	Suggestions    bool   `toml:"suggestions"`
	Capitalization string `toml:"capitalization"`
	Appearance     string `toml:"appearance"`
}

// ClipboardSection enables or disables the editing shortcuts.
type ClipboardSection struct {
	Copy      bool `toml:"copy"`
	Cut       bool `toml:"cut"`
	Paste     bool `toml:"paste"`
	SelectAll bool `toml:"select_all"`
}

// CaretSection configures the blink timer and the floating cursor.
type CaretSection struct {
	BlinkHalfPeriodMS   int     `toml:"blink_half_period_ms"`
	BlinkInitialDelayMS int     `toml:"blink_initial_delay_ms"`
	FloatingMargin      float64 `toml:"floating_margin"`
}

// ScrollSection configures caret scroll-into-view.
type ScrollSection struct {
	Viewport   float64 `toml:"viewport"`
	Margin     float64 `toml:"margin"`
	DurationMS int     `toml:"duration_ms"`
}

// PlatformSection selects the shortcut/caret platform profile.
type PlatformSection struct {
	// Profile is "auto", "mac" or "pc".
	Profile string `toml:"profile"`
}

// FormatSection configures the input-formatter pipeline.
type FormatSection struct {
	MaxLength    int    `toml:"max_length"`
	SingleLine   bool   `toml:"single_line"`
	AllowPattern string `toml:"allow_pattern"`
	LuaScript    string `toml:"lua_script"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Field: FieldSection{
			ObscuringCharacter: "•",
		},
		Keyboard: KeyboardSection{
			Type:        "text",
			Action:      "done",
			Autocorrect: true,
			Suggestions: true,
		},
		Clipboard: ClipboardSection{
			Copy:      true,
			Cut:       true,
			Paste:     true,
			SelectAll: true,
		},
		Caret: CaretSection{
			BlinkHalfPeriodMS:   int(field.BlinkHalfPeriod / time.Millisecond),
			BlinkInitialDelayMS: int(field.BlinkInitialDelay / time.Millisecond),
			FloatingMargin:      field.DefaultFloatingMargin,
		},
		Scroll: ScrollSection{
			DurationMS: int(field.DefaultScrollDuration / time.Millisecond),
		},
		Platform: PlatformSection{Profile: "auto"},
	}
}

// Load reads a configuration file, merging it over the defaults. A
// missing file returns the defaults with no error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks the enumerated string fields and the pattern.
func (c Config) Validate() error {
	if _, err := keyboardType(c.Keyboard.Type); err != nil {
		return err
	}
	if _, err := inputAction(c.Keyboard.Action); err != nil {
		return err
	}
	if _, err := capitalization(c.Keyboard.Capitalization); err != nil {
		return err
	}
	if _, err := appearance(c.Keyboard.Appearance); err != nil {
		return err
	}
	switch c.Platform.Profile {
	case "", "auto", "mac", "pc":
	default:
		return fmt.Errorf("%w: platform.profile %q", ErrInvalidValue, c.Platform.Profile)
	}
	if c.Format.AllowPattern != "" {
		if _, err := regexp.Compile(c.Format.AllowPattern); err != nil {
			return fmt.Errorf("%w: format.allow_pattern: %v", ErrInvalidValue, err)
		}
	}
	return nil
}

// Options converts the configuration into field options.
func (c Config) Options() field.Options {
	opts := field.DefaultOptions()
	opts.ReadOnly = c.Field.ReadOnly
	opts.Obscure = c.Field.Obscure
	if c.Field.ObscuringCharacter != "" {
		opts.ObscuringCharacter = []rune(c.Field.ObscuringCharacter)[0]
	}
	opts.Multiline = c.Field.Multiline

	opts.Keyboard, _ = keyboardType(c.Keyboard.Type)
	opts.InputAction, _ = inputAction(c.Keyboard.Action)
	opts.Autocorrect = c.Keyboard.Autocorrect
	opts.EnableSuggestions = c.Keyboard.Suggestions
	opts.Capitalization, _ = capitalization(c.Keyboard.Capitalization)
	opts.Appearance, _ = appearance(c.Keyboard.Appearance)

	opts.CanCopy = c.Clipboard.Copy
	opts.CanCut = c.Clipboard.Cut
	opts.CanPaste = c.Clipboard.Paste
	opts.CanSelectAll = c.Clipboard.SelectAll

	if c.Caret.BlinkHalfPeriodMS > 0 {
		opts.BlinkHalfPeriod = time.Duration(c.Caret.BlinkHalfPeriodMS) * time.Millisecond
	}
	if c.Caret.BlinkInitialDelayMS > 0 {
		opts.BlinkInitialDelay = time.Duration(c.Caret.BlinkInitialDelayMS) * time.Millisecond
	}
	if c.Caret.FloatingMargin > 0 {
		opts.FloatingMargin = c.Caret.FloatingMargin
	}

	opts.Viewport = c.Scroll.Viewport
	opts.ScrollMargin = c.Scroll.Margin
	if c.Scroll.DurationMS > 0 {
		opts.ScrollDuration = time.Duration(c.Scroll.DurationMS) * time.Millisecond
	}
	return opts
}

// Profile resolves the platform profile, defaulting to the host OS.
func (c Config) Profile() selection.PlatformProfile {
	switch c.Platform.Profile {
	case "mac":
		return selection.MacProfile()
	case "pc":
		return selection.PCProfile()
	default:
		return selection.ProfileFor(runtime.GOOS)
	}
}

// Formatters builds the configured input-formatter pipeline. The Lua
// formatter, when configured, is returned separately so the caller can
// close it.
func (c Config) Formatters() ([]formatter.Formatter, *formatter.Lua, error) {
	var fs []formatter.Formatter
	if c.Format.MaxLength > 0 {
		fs = append(fs, formatter.LengthLimiter{Max: c.Format.MaxLength})
	}
	if c.Format.SingleLine {
		fs = append(fs, formatter.SingleLine{})
	}
	if c.Format.AllowPattern != "" {
		re, err := regexp.Compile(c.Format.AllowPattern)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: format.allow_pattern: %v", ErrInvalidValue, err)
		}
		fs = append(fs, formatter.AllowPattern{Pattern: re})
	}
	var lua *formatter.Lua
	if c.Format.LuaScript != "" {
		script, err := os.ReadFile(c.Format.LuaScript)
		if err != nil {
			return nil, nil, fmt.Errorf("reading lua formatter %s: %w", c.Format.LuaScript, err)
		}
		lua, err = formatter.NewLua(string(script))
		if err != nil {
			return nil, nil, err
		}
		fs = append(fs, lua)
	}
	return fs, lua, nil
}

func keyboardType(s string) (ime.KeyboardType, error) {
	switch s {
	case "", "text":
		return ime.KeyboardText, nil
	case "multiline":
		return ime.KeyboardMultiline, nil
	case "number":
		return ime.KeyboardNumber, nil
	case "phone":
		return ime.KeyboardPhone, nil
	case "email":
		return ime.KeyboardEmail, nil
	case "url":
		return ime.KeyboardURL, nil
	}
	return ime.KeyboardText, fmt.Errorf("%w: keyboard.type %q", ErrInvalidValue, s)
}

func inputAction(s string) (ime.Action, error) {
	switch s {
	case "none":
		return ime.ActionNone, nil
	case "", "done":
		return ime.ActionDone, nil
	case "go":
		return ime.ActionGo, nil
	case "search":
		return ime.ActionSearch, nil
	case "send":
		return ime.ActionSend, nil
	case "newline":
		return ime.ActionNewline, nil
	case "next":
		return ime.ActionNext, nil
	case "previous":
		return ime.ActionPrevious, nil
	}
	return ime.ActionDone, fmt.Errorf("%w: keyboard.action %q", ErrInvalidValue, s)
}

func capitalization(s string) (ime.Capitalization, error) {
	switch s {
	case "", "none":
		return ime.CapitalizeNone, nil
	case "words":
		return ime.CapitalizeWords, nil
	case "sentences":
		return ime.CapitalizeSentences, nil
	case "characters":
		return ime.CapitalizeCharacters, nil
	}
	return ime.CapitalizeNone, fmt.Errorf("%w: keyboard.capitalization %q", ErrInvalidValue, s)
}

func appearance(s string) (ime.Appearance, error) {
	switch s {
	case "", "light":
		return ime.AppearanceLight, nil
	case "dark":
		return ime.AppearanceDark, nil
	}
	return ime.AppearanceLight, fmt.Errorf("%w: keyboard.appearance %q", ErrInvalidValue, s)
}
