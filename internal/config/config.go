// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// GraphicsConfig holds rendering settings.
type GraphicsConfig struct {
	FOV            float32 `yaml:"fov"`             // Horizontal field of view in degrees
	NearPlane      float32 `yaml:"near_plane"`      // Near clip distance
	FarPlane       float32 `yaml:"far_plane"`       // Draw distance
	ShadowMapSize  int     `yaml:"shadow_map_size"` // Shadow map resolution (square)
	ShadowDistance float32 `yaml:"shadow_distance"` // How far from the camera shadows are cast
	WaterFBOWidth  int     `yaml:"water_fbo_width"`
	WaterFBOHeight int     `yaml:"water_fbo_height"`
	MSAASamples    int     `yaml:"msaa_samples"`
	ShowDebugBoxes bool    `yaml:"show_debug_boxes"`
}

// AssetsConfig holds asset file locations.
type AssetsConfig struct {
	Root          string `yaml:"root"`           // Base directory for models/textures
	LoaderWorkers int    `yaml:"loader_workers"` // Background texture decode workers
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "glade",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Graphics: GraphicsConfig{
			FOV:            70.0,
			NearPlane:      0.1,
			FarPlane:       1000.0,
			ShadowMapSize:  4096,
			ShadowDistance: 100.0,
			WaterFBOWidth:  1280,
			WaterFBOHeight: 720,
			MSAASamples:    4,
			ShowDebugBoxes: false,
		},
		Assets: AssetsConfig{
			Root:          "res",
			LoaderWorkers: 8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
