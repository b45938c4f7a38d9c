package renderer

import (
	"testing"

	"github.com/Faultbox/stone/internal/engine/shader"
	"github.com/Faultbox/stone/pkg/mesh"
)

func TestLayout(t *testing.T) {
	b := shader.Bindings{Position: 0, Normal: 1, Color: 2, Light: 3, ModelView: 0, MVP: 1}

	attrs := layout(b)
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}

	wantOffsets := []int{mesh.PositionOffset, mesh.NormalOffset, mesh.ColorOffset, mesh.LightOffset}
	wantSizes := []int32{3, 3, 3, 1}
	total := 0
	for i, a := range attrs {
		if a.offset != wantOffsets[i] {
			t.Errorf("%s offset = %d, want %d", a.name, a.offset, wantOffsets[i])
		}
		if a.size != wantSizes[i] {
			t.Errorf("%s size = %d, want %d", a.name, a.size, wantSizes[i])
		}
		total += int(a.size) * 4
	}
	if total != mesh.Stride {
		t.Errorf("attributes cover %d bytes, stride is %d", total, mesh.Stride)
	}
}

func TestLayoutSkipsUnused(t *testing.T) {
	b := shader.Bindings{Position: 0, Normal: -1, Color: 1, Light: -1}

	attrs := layout(b)
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	if attrs[0].name != "position" || attrs[1].name != "color" {
		t.Errorf("unexpected attributes %+v", attrs)
	}
}
