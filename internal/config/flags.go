package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the command line. Only flags the user actually set override
// values from the config file.
type Flags struct {
	set *pflag.FlagSet

	ConfigPath string
	Debug      bool

	fps    int
	bars   int
	mirror bool
	method string
	ramp   string
	repeat string
}

// ParseFlags parses args (without the program name).
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{set: pflag.NewFlagSet("cadence", pflag.ContinueOnError)}
	fs := f.set
	fs.StringVarP(&f.ConfigPath, "config", "c", DefaultPath(), "path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "write a debug log to cadence-debug.log")
	fs.IntVar(&f.fps, "fps", 0, "spectrum frames per second")
	fs.IntVar(&f.bars, "bars", 0, "number of spectrum bars (0 fits the width)")
	fs.BoolVar(&f.mirror, "mirror", true, "mirror the spectrum around the center")
	fs.StringVar(&f.method, "downscale", "", "cover downscale method: box or bilinear")
	fs.StringVar(&f.ramp, "ramp", "", "cover glyph ramp, dimmest to brightest")
	fs.StringVar(&f.repeat, "repeat", "", "repeat mode: off, one or all")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// Args returns the positional arguments: files, directories or playlists.
func (f *Flags) Args() []string { return f.set.Args() }

// Apply overlays the flags that were set on cfg.
func (f *Flags) Apply(cfg *Config) {
	if f.set.Changed("fps") {
		cfg.UI.FPS = f.fps
	}
	if f.set.Changed("bars") {
		cfg.Spectrum.Bars = f.bars
	}
	if f.set.Changed("mirror") {
		cfg.Spectrum.Mirror = f.mirror
	}
	if f.set.Changed("downscale") {
		cfg.Cover.Method = f.method
	}
	if f.set.Changed("ramp") {
		cfg.Cover.Ramp = f.ramp
	}
	if f.set.Changed("repeat") {
		cfg.Library.Repeat = f.repeat
	}
}
