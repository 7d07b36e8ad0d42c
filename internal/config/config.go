// Package config loads player settings from YAML with command line
// overrides applied on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/cadence/internal/imaging"
	"github.com/olivier-w/cadence/internal/spectrum"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type LibraryConfig struct {
	Dir    string `yaml:"dir"`
	Repeat string `yaml:"repeat"` // off, one, all
}

type AudioConfig struct {
	Volume     float64       `yaml:"volume"`
	BufferSize time.Duration `yaml:"buffer_size"`
}

type SpectrumConfig struct {
	WindowSize  int     `yaml:"window_size"`
	Bars        int     `yaml:"bars"` // 0 fits the panel width
	BarWidth    int     `yaml:"bar_width"`
	BarGap      int     `yaml:"bar_gap"`
	Glyph       string  `yaml:"glyph"`
	DBFloor     float64 `yaml:"db_floor"`
	Reference   float64 `yaml:"reference"`
	TrebleBoost float64 `yaml:"treble_boost"`
	Attack      float64 `yaml:"attack"`
	Decay       float64 `yaml:"decay"`
	Mirror      bool    `yaml:"mirror"`
}

type CoverConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Method     string  `yaml:"method"`
	Ramp       string  `yaml:"ramp"`
	Contrast   float64 `yaml:"contrast"`
	Brightness float64 `yaml:"brightness"`
	Midpoint   float64 `yaml:"midpoint"`
}

type UIConfig struct {
	FPS              int           `yaml:"fps"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
	ProgressWidth    int           `yaml:"progress_width"`
}

// Config is the complete player configuration.
type Config struct {
	Library  LibraryConfig  `yaml:"library"`
	Audio    AudioConfig    `yaml:"audio"`
	Spectrum SpectrumConfig `yaml:"spectrum"`
	Cover    CoverConfig    `yaml:"cover"`
	UI       UIConfig       `yaml:"ui"`
}

// Default returns the built-in settings.
func Default() Config {
	tuning := spectrum.DefaultConfig()
	tone := imaging.DefaultTone()
	return Config{
		Library: LibraryConfig{
			Dir:    ".",
			Repeat: "all",
		},
		Audio: AudioConfig{
			Volume:     0.8,
			BufferSize: 50 * time.Millisecond,
		},
		Spectrum: SpectrumConfig{
			WindowSize:  1024,
			BarWidth:    3,
			BarGap:      1,
			Glyph:       "#",
			DBFloor:     tuning.DBFloor,
			Reference:   tuning.Reference,
			TrebleBoost: tuning.TrebleBoost,
			Attack:      tuning.Attack,
			Decay:       tuning.Decay,
			Mirror:      true,
		},
		Cover: CoverConfig{
			Width:      72,
			Height:     26,
			Method:     imaging.Box{}.Name(),
			Ramp:       imaging.DefaultRamp,
			Contrast:   tone.Contrast,
			Brightness: tone.Brightness,
			Midpoint:   tone.Midpoint,
		},
		UI: UIConfig{
			FPS:              30,
			ProgressInterval: time.Second,
			ProgressWidth:    40,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/cadence/config.yaml or its platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cadence", "config.yaml")
}

// Load reads path and overlays it on the defaults. The result is not
// validated; callers apply flags first and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks ranges that would otherwise fail deep inside the player.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if w := c.Spectrum.WindowSize; w < 2 || w&(w-1) != 0 {
		bad("spectrum.window_size %d must be a power of two", w)
	}
	if c.Spectrum.Bars < 0 {
		bad("spectrum.bars %d must not be negative", c.Spectrum.Bars)
	}
	if c.Spectrum.BarWidth < 1 {
		bad("spectrum.bar_width %d must be positive", c.Spectrum.BarWidth)
	}
	if c.Spectrum.BarGap < 0 {
		bad("spectrum.bar_gap %d must not be negative", c.Spectrum.BarGap)
	}
	if len([]rune(c.Spectrum.Glyph)) != 1 {
		bad("spectrum.glyph %q must be one character", c.Spectrum.Glyph)
	}
	if c.Spectrum.DBFloor >= 0 {
		bad("spectrum.db_floor %v must be negative", c.Spectrum.DBFloor)
	}
	if c.Spectrum.Reference <= 0 {
		bad("spectrum.reference %v must be positive", c.Spectrum.Reference)
	}
	for name, v := range map[string]float64{"attack": c.Spectrum.Attack, "decay": c.Spectrum.Decay} {
		if v <= 0 || v > 1 {
			bad("spectrum.%s %v must be in (0, 1]", name, v)
		}
	}
	if c.Cover.Width < 1 || c.Cover.Height < 1 {
		bad("cover size %dx%d must be positive", c.Cover.Width, c.Cover.Height)
	}
	if _, err := imaging.MethodByName(c.Cover.Method); err != nil {
		bad("cover.method %q must be box or bilinear", c.Cover.Method)
	}
	if c.Cover.Ramp == "" {
		bad("cover.ramp must not be empty")
	}
	if c.UI.FPS < 1 || c.UI.FPS > 240 {
		bad("ui.fps %d must be in [1, 240]", c.UI.FPS)
	}
	if c.UI.ProgressInterval <= 0 {
		bad("ui.progress_interval must be positive")
	}
	if c.UI.ProgressWidth < 1 {
		bad("ui.progress_width %d must be positive", c.UI.ProgressWidth)
	}
	switch c.Library.Repeat {
	case "off", "one", "all":
	default:
		bad("library.repeat %q must be off, one or all", c.Library.Repeat)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		bad("audio.volume %v must be in [0, 1]", c.Audio.Volume)
	}
	return errors.Join(errs...)
}

// SpectrumTuning returns the analyzer settings.
func (c Config) SpectrumTuning() spectrum.Config {
	return spectrum.Config{
		DBFloor:     c.Spectrum.DBFloor,
		Reference:   c.Spectrum.Reference,
		TrebleBoost: c.Spectrum.TrebleBoost,
		Attack:      c.Spectrum.Attack,
		Decay:       c.Spectrum.Decay,
		Mirror:      c.Spectrum.Mirror,
	}
}

// CoverOptions returns the cover rendering settings.
func (c Config) CoverOptions() (imaging.CoverOptions, error) {
	method, err := imaging.MethodByName(c.Cover.Method)
	if err != nil {
		return imaging.CoverOptions{}, err
	}
	return imaging.CoverOptions{
		Width:  c.Cover.Width,
		Height: c.Cover.Height,
		Method: method,
		Ramp:   c.Cover.Ramp,
		Tone: imaging.Tone{
			Contrast:   c.Cover.Contrast,
			Brightness: c.Cover.Brightness,
			Midpoint:   c.Cover.Midpoint,
		},
	}, nil
}

// FrameInterval is the period of the spectrum tick.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.UI.FPS)
}
