// Package config provides configuration loading and access for the
// visualizations.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qwes348/Pseudorandom-Noise/wide"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all application configuration parameters.
type Config struct {
	Screen         ScreenConfig    `yaml:"screen"`
	Scheduler      SchedulerConfig `yaml:"scheduler"`
	Camera         CameraConfig    `yaml:"camera"`
	Telemetry      TelemetryConfig `yaml:"telemetry"`
	Visualizations []Visualization `yaml:"visualizations"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SchedulerConfig holds worker pool settings.
type SchedulerConfig struct {
	Workers           int `yaml:"workers"`            // 0 = GOMAXPROCS
	ParallelThreshold int `yaml:"parallel_threshold"` // Batches below this run single-threaded
}

// CameraConfig holds the initial orbit camera.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Yaw      float32 `yaml:"yaw"`   // Degrees
	Pitch    float32 `yaml:"pitch"` // Degrees
	FOV      float32 `yaml:"fov"`   // Vertical field of view, degrees
}

// TelemetryConfig holds perf collection settings.
type TelemetryConfig struct {
	PerfWindow int  `yaml:"perf_window"`
	LogPerf    bool `yaml:"log_perf"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	BatchCounts    []int // Per visualization, ceil(resolution²/4)
	TotalInstances int   // Sum of resolution² over all visualizations
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file; a visualizations
		// list replaces the default list.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived fills defaults, clamps every visualization and
// calculates derived values.
func (c *Config) computeDerived() {
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 120
	}

	c.Derived.BatchCounts = make([]int, len(c.Visualizations))
	c.Derived.TotalInstances = 0
	for i := range c.Visualizations {
		v := &c.Visualizations[i]
		v.applyDefaults()
		*v = v.Clamp()

		c.Derived.BatchCounts[i] = wide.BatchCount(v.Resolution * v.Resolution)
		c.Derived.TotalInstances += v.Resolution * v.Resolution
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
