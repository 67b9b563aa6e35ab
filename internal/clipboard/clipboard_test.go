package clipboard

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if got, err := m.ReadText(ctx); err != nil || got != "" {
		t.Errorf("empty read = %q, %v", got, err)
	}
	if err := m.WriteText(ctx, "hello"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	got, err := m.ReadText(ctx)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if got != "hello" {
		t.Errorf("read = %q", got)
	}
}

func TestMemoryHonorsContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.ReadText(ctx); err == nil {
		t.Error("read with canceled context should fail")
	}
	if err := m.WriteText(ctx, "x"); err == nil {
		t.Error("write with canceled context should fail")
	}
}
