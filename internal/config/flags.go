package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to run config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagFrames    = flag.String("frames", "", "Output directory for PNG frames")
	flagGIF       = flag.String("gif", "", "Output path for the animated GIF")
	flagSteps     = flag.Int("steps", 0, "Frames per keyframe gap")
	flagWidth     = flag.Int("width", 0, "Frame width")
	flagHeight    = flag.Int("height", 0, "Frame height")
	flagNoBorders = flag.Bool("no-boundaries", false, "Disable parcel boundary drawing")
)

// ParseArgs parses flags from the given arguments. Call this early in
// main(), after the subcommand name has been stripped.
func ParseArgs(args []string) error {
	return flag.CommandLine.Parse(args)
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
	if *flagFrames != "" {
		cfg.Output.FramesDir = *flagFrames
	}
	if *flagGIF != "" {
		cfg.Output.GIF = *flagGIF
	}
	if *flagSteps > 0 {
		cfg.Animation.Steps = *flagSteps
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagNoBorders {
		cfg.Render.DrawBoundaries = false
	}
}
