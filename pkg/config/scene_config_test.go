package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/decker502/monolith/pkg/embedded"
)

func TestDefaultSceneConfigValid(t *testing.T) {
	cfg := DefaultSceneConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bounds := cfg.Phases.Bounds()
	if len(bounds) != 11 {
		t.Fatalf("expected 11 phase boundaries, got %d", len(bounds))
	}
	if bounds[0] != 0 || bounds[10] != 1 {
		t.Errorf("bounds must span [0,1], got %v", bounds)
	}
}

func TestLoadSceneConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, SceneConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
seed: 42
portal:
  radius: 200
  position: [0, 0, 0]
counts:
  darkCloud: 60
`,
			validate: func(t *testing.T, cfg SceneConfig) {
				if cfg.Seed != 42 {
					t.Errorf("expected seed 42, got %d", cfg.Seed)
				}
				if cfg.Portal.Radius != 200 {
					t.Errorf("expected portal radius 200, got %v", cfg.Portal.Radius)
				}
				if cfg.Portal.Position.Len() != 0 {
					t.Errorf("expected portal at origin, got %v", cfg.Portal.Position)
				}
				if cfg.Counts.DarkCloud != 60 {
					t.Errorf("expected 60 dark clouds, got %d", cfg.Counts.DarkCloud)
				}
				// 未覆盖的字段保留默认值
				if cfg.Counts.Dust != 120 {
					t.Errorf("expected default dust count 120, got %d", cfg.Counts.Dust)
				}
				if cfg.Portal.PushZ != 750 {
					t.Errorf("expected default pushZ 750, got %v", cfg.Portal.PushZ)
				}
				if cfg.Matrix.FadeExponent != 0.6 {
					t.Errorf("expected default fade exponent 0.6, got %v", cfg.Matrix.FadeExponent)
				}
			},
		},
		{
			name:        "negative count",
			yamlContent: "counts:\n  spark: -1\n",
			wantErr:     true,
			errContains: "counts.spark",
		},
		{
			name:        "zero radius",
			yamlContent: "portal:\n  radius: 0\n",
			wantErr:     true,
			errContains: "portal.radius",
		},
		{
			name:        "phases out of order",
			yamlContent: "phases:\n  float: 0.5\n",
			wantErr:     true,
			errContains: "strictly increasing",
		},
		{
			name:        "phase beyond one",
			yamlContent: "phases:\n  about: 1.0\n",
			wantErr:     true,
			errContains: "strictly increasing",
		},
		{
			name:        "tunnel windows",
			yamlContent: "tunnel:\n  fadeOutWindow: 0\n",
			wantErr:     true,
			errContains: "fade windows",
		},
		{
			name:        "tunnel depth order",
			yamlContent: "tunnel:\n  farZ: 600\n",
			wantErr:     true,
			errContains: "recycleZ",
		},
		{
			name:        "vortex opacity",
			yamlContent: "portal:\n  vortexOpacity: 1.5\n",
			wantErr:     true,
			errContains: "portal.vortexOpacity",
		},
		{
			name:        "bad fov",
			yamlContent: "camera:\n  fov: 180\n",
			wantErr:     true,
			errContains: "camera.fov",
		},
		{
			name:        "bad vector length",
			yamlContent: "portal:\n  position: [1, 2]\n",
			wantErr:     true,
			errContains: "parse",
		},
		{
			name:        "matrix speed range",
			yamlContent: "matrix:\n  speedMin: 120\n",
			wantErr:     true,
			errContains: "speed range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write temp file: %v", err)
			}

			cfg, err := LoadSceneConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadSceneConfig_MissingFile(t *testing.T) {
	_, err := LoadSceneConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read scene config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseSceneConfig_Empty(t *testing.T) {
	cfg, err := ParseSceneConfig(nil)
	if err != nil {
		t.Fatalf("empty input should yield defaults: %v", err)
	}
	if cfg.Camera.FOV != 75 {
		t.Errorf("expected default fov 75, got %v", cfg.Camera.FOV)
	}
}

// TestLoadSceneConfig_Embedded 嵌入的 data/scene.yaml 与内置默认值一致
func TestLoadSceneConfig_Embedded(t *testing.T) {
	embedded.Init(os.DirFS("../.."))
	defer embedded.Init(nil)

	cfg, err := LoadSceneConfig(DefaultScenePath)
	if err != nil {
		t.Fatalf("LoadSceneConfig failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultSceneConfig()) {
		t.Errorf("data/scene.yaml drifted from DefaultSceneConfig:\n got %+v\nwant %+v", cfg, DefaultSceneConfig())
	}
}
