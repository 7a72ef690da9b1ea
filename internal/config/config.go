package config

import (
	"fmt"
	"os"

	"github.com/ravi-l/povsim/internal/vec"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 1.5
	DefaultDensity  = 3000.0
	DefaultOutDir   = "POVRAY_1"
)

// Triple is a YAML-friendly 3-component value ([x, y, z] in config files).
type Triple [3]float64

func (t Triple) Vec() vec.Vec3 {
	return vec.Vec3{X: t[0], Y: t[1], Z: t[2]}
}

func (t Triple) Color() vec.Color {
	return vec.Color{R: t[0], G: t[1], B: t[2]}
}

// Config is the full run description: stepping, scene geometry, camera,
// light and exporter naming. CLI flags override config values, config
// overrides presets.
type Config struct {
	Dt        float64 `yaml:"dt"`
	Duration  float64 `yaml:"duration"`
	OutputDir string  `yaml:"output_dir"`
	DataDir   string  `yaml:"data_dir"`
	Gravity   Triple  `yaml:"gravity"`

	Scene  SceneConfig  `yaml:"scene"`
	Camera CameraConfig `yaml:"camera"`
	Light  LightConfig  `yaml:"light"`
	Export ExportConfig `yaml:"export"`
}

type BodyConfig struct {
	Size         Triple     `yaml:"size"`
	Density      float64    `yaml:"density"`
	Position     Triple     `yaml:"position"`
	Velocity     Triple     `yaml:"velocity"`
	Color        *Triple    `yaml:"color,omitempty"`
	Texture      string     `yaml:"texture,omitempty"`
	TextureScale [2]float64 `yaml:"texture_scale,omitempty"`
	Fixed        bool       `yaml:"fixed"`
}

type SceneConfig struct {
	Floor      BodyConfig `yaml:"floor"`
	Pendulum   BodyConfig `yaml:"pendulum"`
	JointPoint Triple     `yaml:"joint_point"`
}

type CameraConfig struct {
	Position Triple  `yaml:"position"`
	Aim      Triple  `yaml:"aim"`
	Up       Triple  `yaml:"up"`
	Angle    float64 `yaml:"angle"`
}

type LightConfig struct {
	Position    Triple `yaml:"position"`
	Color       Triple `yaml:"color"`
	CastShadows bool   `yaml:"cast_shadows"`
}

type ExportConfig struct {
	TemplateFile    string `yaml:"template_file"`
	ScriptFile      string `yaml:"script_file"`
	DataFilebase    string `yaml:"data_filebase"`
	PictureFilebase string `yaml:"picture_filebase"`
	CustomCommands  string `yaml:"custom_commands"`
}

// DefaultConfig mirrors the canonical pendulum scene: a fixed textured floor,
// a kicked hanging box, a ball joint one unit above its center, and the
// standard camera/light placement.
func DefaultConfig() *Config {
	green := Triple{0.2, 0.5, 0.25}
	return &Config{
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		OutputDir: DefaultOutDir,
		DataDir:   "data",
		Gravity:   Triple{0, -9.81, 0},
		Scene: SceneConfig{
			Floor: BodyConfig{
				Size:         Triple{10, 2, 10},
				Density:      DefaultDensity,
				Position:     Triple{0, -2, 0},
				Texture:      "textures/checker.png",
				TextureScale: [2]float64{2, 2},
				Fixed:        true,
			},
			Pendulum: BodyConfig{
				Size:     Triple{0.5, 2, 0.5},
				Density:  DefaultDensity,
				Position: Triple{0, 3, 0},
				Velocity: Triple{1, 0, 0},
				Color:    &green,
			},
			JointPoint: Triple{0, 4, 0},
		},
		Camera: CameraConfig{
			Position: Triple{0, 3, -10},
			Aim:      Triple{0, 1, 0},
			Up:       Triple{0, -1, 0},
			Angle:    50,
		},
		Light: LightConfig{
			Position:    Triple{-3, 4, 2},
			Color:       Triple{0.15, 0.15, 0.12},
			CastShadows: false,
		},
		Export: ExportConfig{
			TemplateFile:    "povray_template.pov",
			ScriptFile:      "render_frames.pov",
			DataFilebase:    "state",
			PictureFilebase: "picture",
			CustomCommands: `light_source { <2, 10, -3> color rgb<1.2,1.2,1.2> area_light <4, 0, 0>, <0, 0, 4>, 8, 8 adaptive 1 jitter }
object { Grid(1, 0.02, rgb<0.7,0.8,0.8>, rgbt<1,1,1,1>) rotate <0, 0, 90> }`,
		},
	}
}

// Load reads a YAML config, starting from defaults so partial files work.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configs the runner cannot execute.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}
