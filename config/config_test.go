package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rasenga223/luminicad/snap"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load() = %+v, want defaults %+v", cfg, Default())
	}
	if cfg.Snap.Types != snap.SnapAll {
		t.Fatalf("Snap.Types = %v, want all", cfg.Snap.Types)
	}
}

func TestLoad_EmptyPathUsesHomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "luminicad")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`locale = "zh-CN"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Locale != "zh-CN" {
		t.Fatalf("Locale = %q, want %q", cfg.Locale, "zh-CN")
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
locale = "  zh-CN  "
history_limit = 0

[snap]
radius = 12
pick_radius = 5
types = ["endpoint", " Center "]

[view]
width = 320
height = 240

[theme]
preview = "  #ff0000 "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Locale != "zh-CN" {
		t.Errorf("Locale = %q, want %q", cfg.Locale, "zh-CN")
	}
	if cfg.HistoryLimit != 0 {
		t.Errorf("HistoryLimit = %d, want explicit 0", cfg.HistoryLimit)
	}
	if cfg.Snap.Radius != 12 || cfg.PickRadius != 5 {
		t.Errorf("radii = %g, %g, want 12, 5", cfg.Snap.Radius, cfg.PickRadius)
	}
	if want := snap.SnapEndpoint | snap.SnapCenter; cfg.Snap.Types != want {
		t.Errorf("Snap.Types = %v, want %v", cfg.Snap.Types, want)
	}
	if cfg.Theme.Preview != "#ff0000" {
		t.Errorf("Theme.Preview = %q, want %q", cfg.Theme.Preview, "#ff0000")
	}
	if cfg.Theme.Background != Default().Theme.Background {
		t.Errorf("Theme.Background = %q, want default", cfg.Theme.Background)
	}

	cam := cfg.Camera()
	if cam.Width != 320 || cam.Height != 240 || cam.Scale != defaultScale {
		t.Errorf("Camera() = %+v", cam)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"negative history", "history_limit = -1", ErrInvalid},
		{"negative radius", "[snap]\nradius = -2", ErrInvalid},
		{"unknown snap type", `[snap]` + "\n" + `types = ["tangent"]`, ErrInvalid},
		{"negative width", "[view]\nwidth = -10", ErrInvalid},
		{"syntax", "locale = ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
