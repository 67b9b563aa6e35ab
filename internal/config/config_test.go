package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/fieldkit/internal/input/ime"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Field != def.Field || cfg.Keyboard != def.Keyboard {
		t.Errorf("missing file did not yield defaults: %+v", cfg)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeFile(t, "fieldkit.toml", `
[field]
obscure = true
multiline = true

[keyboard]
type = "email"
action = "send"

[caret]
blink_half_period_ms = 250

[platform]
profile = "mac"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Field.Obscure || !cfg.Field.Multiline {
		t.Error("field section not applied")
	}
	// Untouched sections keep their defaults.
	if !cfg.Clipboard.Copy || !cfg.Clipboard.Paste {
		t.Error("clipboard defaults lost")
	}

	opts := cfg.Options()
	if opts.Keyboard != ime.KeyboardEmail {
		t.Errorf("keyboard = %v, want email", opts.Keyboard)
	}
	if opts.BlinkHalfPeriod != 250*time.Millisecond {
		t.Errorf("blink half period = %v", opts.BlinkHalfPeriod)
	}
	if cfg.Profile().Name != "mac" {
		t.Errorf("profile = %q, want mac", cfg.Profile().Name)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeFile(t, "bad.toml", `not [valid toml`)
	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
}

func TestValidateRejectsBadEnums(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*Config)
	}{
		{"keyboard type", func(c *Config) { c.Keyboard.Type = "holographic" }},
		{"action", func(c *Config) { c.Keyboard.Action = "launch" }},
		{"profile", func(c *Config) { c.Platform.Profile = "amiga" }},
		{"pattern", func(c *Config) { c.Format.AllowPattern = "(" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.cfg(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("Validate = %v, want ErrInvalidValue", err)
			}
		})
	}
}

func TestOptionsObscuringCharacter(t *testing.T) {
	cfg := Default()
	cfg.Field.ObscuringCharacter = "*"
	if got := cfg.Options().ObscuringCharacter; got != '*' {
		t.Errorf("obscuring character = %q", got)
	}
}

func TestFormattersFromConfig(t *testing.T) {
	cfg := Default()
	cfg.Format.MaxLength = 10
	cfg.Format.SingleLine = true
	cfg.Format.AllowPattern = `^[a-z]*$`

	fs, lua, err := cfg.Formatters()
	if err != nil {
		t.Fatalf("Formatters: %v", err)
	}
	if lua != nil {
		t.Error("unexpected lua formatter")
	}
	if len(fs) != 3 {
		t.Errorf("formatters = %d, want 3", len(fs))
	}
}

func TestFormattersLuaScript(t *testing.T) {
	script := writeFile(t, "fmt.lua", `
function format(old, new)
  return new
end`)
	cfg := Default()
	cfg.Format.LuaScript = script

	fs, lua, err := cfg.Formatters()
	if err != nil {
		t.Fatalf("Formatters: %v", err)
	}
	if lua == nil {
		t.Fatal("no lua formatter returned")
	}
	defer lua.Close()
	if len(fs) != 1 {
		t.Errorf("formatters = %d, want 1", len(fs))
	}
}

func TestWatcherReloads(t *testing.T) {
	path := writeFile(t, "fieldkit.toml", `[field]
obscure = false
`)
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	reloaded := make(chan Config, 1)
	w.OnReload(func(cfg Config, err error) {
		if err != nil {
			t.Errorf("reload error: %v", err)
			return
		}
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("[field]\nobscure = true\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if !cfg.Field.Obscure {
			t.Error("reloaded config missing the change")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}
