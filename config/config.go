package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/rasenga223/luminicad/preview"
	"github.com/rasenga223/luminicad/snap"
	"github.com/rasenga223/luminicad/view"
)

// ErrInvalid reports a value that parses but cannot be used.
var ErrInvalid = errors.New("config: invalid value")

const (
	defaultConfigPath   = "~/.config/luminicad/config.toml"
	defaultLocale       = "en-US"
	defaultHistoryLimit = 50
	defaultWidth        = 800
	defaultHeight       = 600
	defaultScale        = 10
)

// Config holds the editor settings.
type Config struct {
	Locale       string
	HistoryLimit int
	Snap         snap.Settings
	PickRadius   float64
	Width        float64
	Height       float64
	Scale        float64
	Theme        preview.Theme
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Locale:       defaultLocale,
		HistoryLimit: defaultHistoryLimit,
		Snap:         snap.Settings{Radius: snap.DefaultRadius, Types: snap.SnapAll},
		PickRadius:   preview.DefaultPickRadius,
		Width:        defaultWidth,
		Height:       defaultHeight,
		Scale:        defaultScale,
		Theme:        preview.DefaultTheme(),
	}
}

type rawConfig struct {
	Locale       string `toml:"locale"`
	HistoryLimit *int   `toml:"history_limit"`
	Snap         struct {
		Radius     float64  `toml:"radius"`
		Types      []string `toml:"types"`
		PickRadius float64  `toml:"pick_radius"`
	} `toml:"snap"`
	View struct {
		Width  float64 `toml:"width"`
		Height float64 `toml:"height"`
		Scale  float64 `toml:"scale"`
	} `toml:"view"`
	Theme struct {
		Background string  `toml:"background"`
		Shape      string  `toml:"shape"`
		Highlight  string  `toml:"highlight"`
		Preview    string  `toml:"preview"`
		Label      string  `toml:"label"`
		LineWidth  float64 `toml:"line_width"`
		LabelSize  float64 `toml:"label_size"`
	} `toml:"theme"`
}

// Load reads the config at path, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse decodes TOML from r on top of the defaults.
func Parse(r io.Reader) (Config, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return raw.resolve()
}

func (raw rawConfig) resolve() (Config, error) {
	cfg := Default()

	if l := strings.TrimSpace(raw.Locale); l != "" {
		cfg.Locale = l
	}
	if raw.HistoryLimit != nil {
		if *raw.HistoryLimit < 0 {
			return Config{}, fmt.Errorf("%w: history_limit %d", ErrInvalid, *raw.HistoryLimit)
		}
		cfg.HistoryLimit = *raw.HistoryLimit
	}

	if raw.Snap.Radius < 0 || raw.Snap.PickRadius < 0 {
		return Config{}, fmt.Errorf("%w: negative snap radius", ErrInvalid)
	}
	if raw.Snap.Radius > 0 {
		cfg.Snap.Radius = raw.Snap.Radius
	}
	if raw.Snap.PickRadius > 0 {
		cfg.PickRadius = raw.Snap.PickRadius
	}
	if raw.Snap.Types != nil {
		if len(raw.Snap.Types) == 0 {
			return Config{}, fmt.Errorf("%w: snap.types is empty", ErrInvalid)
		}
		var types snap.ObjectSnapType
		for _, name := range raw.Snap.Types {
			t, ok := snap.ParseObjectSnapType(name)
			if !ok {
				return Config{}, fmt.Errorf("%w: snap type %q", ErrInvalid, name)
			}
			types |= t
		}
		cfg.Snap.Types = types
	}

	for _, v := range []struct {
		name string
		src  float64
		dst  *float64
	}{
		{"view.width", raw.View.Width, &cfg.Width},
		{"view.height", raw.View.Height, &cfg.Height},
		{"view.scale", raw.View.Scale, &cfg.Scale},
		{"theme.line_width", raw.Theme.LineWidth, &cfg.Theme.LineWidth},
		{"theme.label_size", raw.Theme.LabelSize, &cfg.Theme.LabelSize},
	} {
		switch {
		case v.src < 0:
			return Config{}, fmt.Errorf("%w: %s %g", ErrInvalid, v.name, v.src)
		case v.src > 0:
			*v.dst = v.src
		}
	}

	for _, c := range []struct {
		src string
		dst *string
	}{
		{raw.Theme.Background, &cfg.Theme.Background},
		{raw.Theme.Shape, &cfg.Theme.Shape},
		{raw.Theme.Highlight, &cfg.Theme.Highlight},
		{raw.Theme.Preview, &cfg.Theme.Preview},
		{raw.Theme.Label, &cfg.Theme.Label},
	} {
		if s := strings.TrimSpace(c.src); s != "" {
			*c.dst = s
		}
	}
	return cfg, nil
}

// Camera returns the default camera for the configured viewport.
func (c Config) Camera() view.Camera {
	cam := view.DefaultCamera(c.Width, c.Height)
	cam.Scale = c.Scale
	return cam
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
