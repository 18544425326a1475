package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.Uint64("seed", 0, "Random seed (0 = time based)")
	flagBlades     = flag.Int("blades", -1, "Number of grass blades")
	flagSize       = flag.Float64("size", 0, "Ground plane size")
	flagMask       = flag.String("mask", "", "Path to placement mask image")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Field.Seed = *flagSeed
	}
	if *flagBlades >= 0 {
		cfg.Field.BladeCount = *flagBlades
	}
	if *flagSize > 0 {
		cfg.Field.PlaneSize = float32(*flagSize)
	}
	if *flagMask != "" {
		cfg.Mask.Path = *flagMask
	}
	if *flagWindowed {
		cfg.Render.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Render.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
}
