package components

import (
	"math"
	"testing"
)

func TestMaterialSetOpacity(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"正常值", 0.5, 0.5},
		{"下限", 0, 0},
		{"上限", 1, 1},
		{"负数截断", -0.2, 0},
		{"超出截断", 1.7, 1},
		{"NaN 视为 0", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m MaterialComponent
			m.SetOpacity(tt.in)
			if m.Opacity != tt.want {
				t.Errorf("SetOpacity(%v) = %v, want %v", tt.in, m.Opacity, tt.want)
			}
		})
	}
}

func TestGlyphPhaseString(t *testing.T) {
	if GlyphScrolling.String() != "Scrolling" || GlyphFloating.String() != "Floating" || GlyphFlying.String() != "Flying" {
		t.Error("unexpected phase names")
	}
	if GlyphPhase(9).String() != "Unknown" {
		t.Error("out of range phase should be Unknown")
	}
}

func TestNewTransform(t *testing.T) {
	tr := NewTransform([3]float64{1, 2, 3}, 7)
	if tr.ScaleX != 1 || tr.ScaleY != 1 {
		t.Errorf("scale = (%v, %v), want (1, 1)", tr.ScaleX, tr.ScaleY)
	}
	if tr.Parent != 7 {
		t.Errorf("parent = %v, want 7", tr.Parent)
	}
	tr.SetScale(2)
	if tr.ScaleX != 2 || tr.ScaleY != 2 {
		t.Error("SetScale should set both axes")
	}
}
