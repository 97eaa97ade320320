// Package config handles animation run configuration: typed defaults, a
// YAML run file, and CLI flag overrides, validated once before rendering.
package config

// Config holds all settings for one animation run.
type Config struct {
	Surfaces  SurfacesConfig `yaml:"surfaces"`
	Animation AnimConfig     `yaml:"animation"`
	Color     ColorConfig    `yaml:"color"`
	Render    RenderConfig   `yaml:"render"`
	Output    OutputConfig   `yaml:"output"`
	Logging   LoggingConfig  `yaml:"logging"`
}

// SurfacesConfig names the input geometry and per-vertex attributes.
type SurfacesConfig struct {
	// Keyframes lists the OBJ surfaces, in morph order. All must share
	// vertex count and ordering; the first keyframe's faces are used for
	// every frame.
	Keyframes []string `yaml:"keyframes"`
	// Data lists scalar files: one entry for static data, one per
	// keyframe for time-varying data. Empty means "no data".
	Data []string `yaml:"data"`
	// Parcels is an optional per-vertex label file.
	Parcels string `yaml:"parcels"`
	// Clusters, when positive and no parcel file is given, derives the
	// parcellation by clustering the first keyframe's vertices.
	Clusters int `yaml:"clusters"`
}

// AnimConfig shapes the frame sequence.
type AnimConfig struct {
	// Steps is the number of frames per keyframe gap, endpoints included.
	Steps       int  `yaml:"steps"`
	FirstRepeat int  `yaml:"first_repeat"`
	LastRepeat  int  `yaml:"last_repeat"`
	KeepLast    bool `yaml:"keep_last"`
}

// ColorConfig controls the colormap pipeline.
type ColorConfig struct {
	// Maps lists colormap names: one for a static map, one per keyframe
	// for a time-varying map.
	Maps []string `yaml:"maps"`
	// Space is the colormap interpolation space: hsv (default) or rgb.
	Space string `yaml:"space"`
	// Limits is the color-limit policy: global (default), fixed or vary.
	Limits string     `yaml:"limits"`
	Range  [2]float64 `yaml:"range"` // used when limits is fixed
}

// RenderConfig holds camera, lighting and overlay settings.
type RenderConfig struct {
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Supersample int        `yaml:"supersample"`
	Background  [3]float64 `yaml:"background"`
	// View is the camera azimuth/elevation pair in degrees.
	View [2]float64 `yaml:"view"`
	// Lights lists azimuth/elevation pairs; empty uses two symmetric
	// default lights.
	Lights         [][2]float64 `yaml:"lights"`
	DrawBoundaries bool         `yaml:"draw_boundaries"`
	LineWidth      float64      `yaml:"line_width"`
	BoundaryColor  [3]float64   `yaml:"boundary_color"`
}

// OutputConfig names the frame destinations. At least one of FramesDir
// and GIF must be set for a render run.
type OutputConfig struct {
	FramesDir string `yaml:"frames_dir"`
	GIF       string `yaml:"gif"`
	DelayMS   int    `yaml:"delay_ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the documented default values.
func Default() *Config {
	return &Config{
		Animation: AnimConfig{
			Steps:       30,
			FirstRepeat: 1,
			LastRepeat:  1,
			KeepLast:    true,
		},
		Color: ColorConfig{
			Maps:   []string{"viridis"},
			Space:  "hsv",
			Limits: "global",
		},
		Render: RenderConfig{
			Width:          640,
			Height:         480,
			Supersample:    2,
			Background:     [3]float64{1, 1, 1},
			View:           [2]float64{-35, 20},
			DrawBoundaries: true,
			LineWidth:      2,
			BoundaryColor:  [3]float64{0, 0, 0},
		},
		Output: OutputConfig{
			DelayMS: 100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
