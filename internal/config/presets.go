package config

import "sort"

// Presets are named run configurations selectable with --preset.
var presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"fine": func(c *Config) {
		c.Dt = 0.002
	},
	"long": func(c *Config) {
		c.Duration = 5.0
	},
	"heavy": func(c *Config) {
		c.Scene.Pendulum.Density = 9000
	},
	"wide-swing": func(c *Config) {
		c.Scene.Pendulum.Velocity = Triple{3, 0, 0}
	},
}

// GetPreset returns the named preset applied on top of defaults, or nil if
// the name is unknown.
func GetPreset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ListPresets returns all preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
