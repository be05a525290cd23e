package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// WindowConfig controls the native window created by the engine.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	VSync  bool   `yaml:"vsync"`
}

// CameraConfig holds the attach behaviour of the camera controller.
type CameraConfig struct {
	// BlendFactor is applied once per frame, not scaled by frame time.
	BlendFactor float32 `yaml:"blend_factor"`
	// FollowDistance is how far behind the attached body (local +Z) the camera sits.
	FollowDistance float32 `yaml:"follow_distance"`
	MoveSpeed      float32 `yaml:"move_speed"`
	LookSpeed      float32 `yaml:"look_speed"`
}

// SceneConfig holds tunables of the solar system animation.
type SceneConfig struct {
	// AlternatePeriod is the length in seconds of one Phong+Gouraud cycle for planet 2.
	AlternatePeriod float64 `yaml:"alternate_period"`
	RingFrequency   float32 `yaml:"ring_frequency"`
}

// ControlConfig configures the websocket control panel.
type ControlConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// SnapshotConfig configures the headless renderer.
type SnapshotConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Supersample int    `yaml:"supersample"`
	Workers     int    `yaml:"workers"`
	OutputDir   string `yaml:"output_dir"`
}

type Config struct {
	Debug    bool           `yaml:"debug"`
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Control  ControlConfig  `yaml:"control"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// Default returns the configuration the demo was tuned with.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Solar System",
			Width:  1080,
			Height: 600,
			X:      100,
			Y:      100,
			VSync:  true,
		},
		Camera: CameraConfig{
			BlendFactor:    0.1,
			FollowDistance: 5,
			MoveSpeed:      10,
			LookSpeed:      0.002,
		},
		Scene: SceneConfig{
			AlternatePeriod: 2,
			RingFrequency:   18,
		},
		Control: ControlConfig{
			Enabled: false,
			Addr:    "localhost:8080",
		},
		Snapshot: SnapshotConfig{
			Width:       800,
			Height:      450,
			Supersample: 2,
			Workers:     4,
			OutputDir:   "snapshots",
		},
	}
}

// Load reads a YAML config file on top of Default. A missing file is not an
// error; the defaults are returned with found set to false.
func Load(path string) (cfg Config, found bool, err error) {
	cfg = Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return Default(), true, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, true, nil
}

// Parse decodes YAML onto Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the frame loop cannot work with.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.BlendFactor <= 0 || c.Camera.BlendFactor > 1 {
		return fmt.Errorf("camera blend_factor must be in (0,1], got %v", c.Camera.BlendFactor)
	}
	if c.Scene.AlternatePeriod <= 0 {
		return fmt.Errorf("scene alternate_period must be positive, got %v", c.Scene.AlternatePeriod)
	}
	if c.Scene.RingFrequency <= 0 {
		return fmt.Errorf("scene ring_frequency must be positive, got %v", c.Scene.RingFrequency)
	}
	if c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", c.Snapshot.Width, c.Snapshot.Height)
	}
	if c.Snapshot.Workers < 1 {
		return fmt.Errorf("snapshot workers must be at least 1, got %d", c.Snapshot.Workers)
	}
	if c.Snapshot.Supersample < 1 {
		return fmt.Errorf("snapshot supersample must be at least 1, got %d", c.Snapshot.Supersample)
	}
	return nil
}

// Save writes the config as YAML, creating or truncating path.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
