package viewer

import (
	"testing"
	"time"
)

func TestFPSTitle(t *testing.T) {
	if got := fpsTitle(60); got != "Stone | 60 FPS" {
		t.Errorf("fpsTitle(60) = %q", got)
	}
}

func TestFPSCounter(t *testing.T) {
	start := time.Unix(0, 0)
	c := newFPSCounter(start)

	for i := 1; i < 30; i++ {
		if _, ok := c.tick(start.Add(time.Duration(i) * 10 * time.Millisecond)); ok {
			t.Fatalf("tick %d reported before a second elapsed", i)
		}
	}

	n, ok := c.tick(start.Add(time.Second))
	if !ok || n != 30 {
		t.Errorf("tick at 1s = %d, %v; want 30, true", n, ok)
	}

	n, ok = c.tick(start.Add(1500 * time.Millisecond))
	if ok {
		t.Errorf("counter did not reset, got %d", n)
	}
}
