// Package clipboard abstracts the host clipboard. Absence of clipboard
// data is a normal condition, never an error: ReadText returns an
// empty string when nothing is available.
package clipboard

import (
	"context"
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard reads and writes plain text on the host clipboard.
type Clipboard interface {
	// ReadText returns the clipboard text, or "" when empty.
	ReadText(ctx context.Context) (string, error)

	// WriteText replaces the clipboard contents.
	WriteText(ctx context.Context, s string) error
}

// System is the OS clipboard.
type System struct{}

// NewSystem creates a system clipboard.
func NewSystem() *System {
	return &System{}
}

// ReadText implements Clipboard. An unsupported or empty clipboard
// reads as "".
func (s *System) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	txt, err := clipboard.ReadAll()
	if err != nil {
		// No clipboard data is not a fault.
		return "", nil
	}
	return txt, nil
}

// WriteText implements Clipboard.
func (s *System) WriteText(ctx context.Context, txt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return clipboard.WriteAll(txt)
}

// Memory is an in-process clipboard for tests.
type Memory struct {
	mu  sync.Mutex
	txt string
}

// NewMemory creates an empty in-memory clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadText implements Clipboard.
func (m *Memory) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txt, nil
}

// WriteText implements Clipboard.
func (m *Memory) WriteText(ctx context.Context, txt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txt = txt
	return nil
}
