package particle

import (
	"strings"
	"testing"
)

// TestDefaultPoolSpecs 内置定义覆盖全部八类粒子且自洽
func TestDefaultPoolSpecs(t *testing.T) {
	specs := DefaultPoolSpecs()
	if len(specs) != 8 {
		t.Fatalf("expected 8 pool kinds, got %d", len(specs))
	}
	for kind, spec := range specs {
		if spec.Kind != kind {
			t.Errorf("%s: Kind field = %s", kind, spec.Kind)
		}
		if err := spec.Validate(); err != nil {
			t.Errorf("%s: default spec invalid: %v", kind, err)
		}
	}

	// 文档中的关键区间
	if got := specs[KindDust].OrbitSpeed; got != Between(0.3, 0.7) {
		t.Errorf("dust orbit speed = %v, want [0.3 0.7]", got)
	}
	if got := specs[KindCenterGlow].RadiusOffset; got != Between(0, 80) {
		t.Errorf("center glow disk = %v, want [0 80]", got)
	}
	if specs[KindDarkCloud].Additive {
		t.Error("dark clouds use normal blending")
	}
	if specs[KindLightRay].Placement != PlacementSpokes {
		t.Error("light rays must use spoke placement")
	}
}

// TestParsePoolSpecs_Override 文件只需写出改动的字段
func TestParsePoolSpecs_Override(t *testing.T) {
	src := `
pools:
  dust:
    baseOpacity: 0.35
    orbitSpeed: "[0.1 0.2]"
  spark:
    flickerSpeed: [10, 12]
`
	specs, err := ParsePoolSpecs([]byte(src))
	if err != nil {
		t.Fatalf("ParsePoolSpecs failed: %v", err)
	}

	dust := specs[KindDust]
	if dust.BaseOpacity != 0.35 {
		t.Errorf("dust baseOpacity = %v, want 0.35", dust.BaseOpacity)
	}
	if dust.OrbitSpeed != Between(0.1, 0.2) {
		t.Errorf("dust orbitSpeed = %v, want [0.1 0.2]", dust.OrbitSpeed)
	}
	// 未写出的字段保持默认
	if dust.Texture != "dust" || dust.WobbleAmount != Between(10, 30) {
		t.Errorf("dust defaults lost: texture=%q wobble=%v", dust.Texture, dust.WobbleAmount)
	}
	if specs[KindSpark].FlickerSpeed != Between(10, 12) {
		t.Errorf("spark flickerSpeed = %v", specs[KindSpark].FlickerSpeed)
	}
	if specs[KindTunnel].StreamSpeed != Between(800, 1400) {
		t.Errorf("untouched tunnel spec changed: %v", specs[KindTunnel].StreamSpeed)
	}
}

func TestParsePoolSpecs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unknown kind", "pools:\n  smoke:\n    baseOpacity: 0.5\n", "unknown particle kind"},
		{"bad opacity", "pools:\n  dust:\n    baseOpacity: 1.5\n", "baseOpacity"},
		{"bad range", "pools:\n  dust:\n    z: \"[1 2 3]\"\n", "one or two values"},
		{"empty texture", "pools:\n  spark:\n    texture: \"\"\n", "texture"},
		{"bad placement", "pools:\n  lightRay:\n    placement: grid\n", "placement"},
		{"bad stagger", "pools:\n  dust:\n    stagger: 1\n", "stagger"},
		{"not yaml", "pools: [", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePoolSpecs([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParsePoolSpecs_Empty(t *testing.T) {
	specs, err := ParsePoolSpecs(nil)
	if err != nil {
		t.Fatalf("empty input should yield defaults: %v", err)
	}
	if len(specs) != len(DefaultPoolSpecs()) {
		t.Errorf("expected %d specs, got %d", len(DefaultPoolSpecs()), len(specs))
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range append(PortalKinds, KindTunnel) {
		got, err := ParseKind(kind.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", kind.String(), err)
		}
		if got != kind {
			t.Errorf("ParseKind(%q) = %v, want %v", kind.String(), got, kind)
		}
	}
	if len(PortalKinds) != 7 {
		t.Errorf("portal ensemble owns 7 pools, got %d", len(PortalKinds))
	}
}
