// Package config loads the per-environment YAML configuration.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the pagecluster run configuration.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Store      StoreConfig      `yaml:"store"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Workers    WorkersConfig    `yaml:"workers"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// InputConfig locates the renderer pool.
type InputConfig struct {
	URL            string `yaml:"url"`
	ScreenshotBase string `yaml:"screenshot_base"` // default: directory of url
}

// OutputConfig locates the output files.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	ClustersFile string `yaml:"clusters_file"`
	ErrorLogFile string `yaml:"error_log_file"`
}

// StoreConfig holds the optional run store connection.
type StoreConfig struct {
	Driver           string   `yaml:"driver"` // none, redis, valkey (default: none)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	TTLHours         int      `yaml:"ttl_hours"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a store driver is configured.
func (s StoreConfig) Enabled() bool { return s.Driver != "" && s.Driver != "none" }

// ClusteringConfig holds thresholds, fusion weights and text weighting.
type ClusteringConfig struct {
	TextThreshold  *float64 `yaml:"text_threshold"`
	ImageThreshold *float64 `yaml:"image_threshold"`
	TextWeight     *float64 `yaml:"text_weight"`
	ImageWeight    *float64 `yaml:"image_weight"`
	Weighting      string   `yaml:"weighting"` // tf, tfidf (default: tf)
}

// WorkersConfig holds concurrency limits.
type WorkersConfig struct {
	Tiers  int `yaml:"tiers"`
	Decode int `yaml:"decode"`
}

// MetricsConfig holds the metrics endpoint and textfile export.
type MetricsConfig struct {
	Addr     string `yaml:"addr"`     // empty disables the server
	Textfile string `yaml:"textfile"` // empty disables the export
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Override adjusts a parsed config before defaults and validation, e.g. from CLI flags.
type Override func(*Config)

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string, overrides ...Override) (Config, error) {
	return LoadFile(findConfigPath(env), overrides...)
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string, overrides ...Override) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	for _, o := range overrides {
		o(&cfg)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.ClustersFile == "" {
		c.Output.ClustersFile = "clusters.json"
	}
	if c.Output.ErrorLogFile == "" {
		c.Output.ErrorLogFile = "error_log.txt"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "none"
	}
	if c.Store.KeyPrefix == "" {
		c.Store.KeyPrefix = "pagecluster:"
	}
	if c.Store.TTLHours <= 0 {
		c.Store.TTLHours = 168
	}
	if c.Store.ReadinessTimeout <= 0 {
		c.Store.ReadinessTimeout = 10
	}
	setDefault(&c.Clustering.TextThreshold, 0.7)
	setDefault(&c.Clustering.ImageThreshold, 0.85)
	setDefault(&c.Clustering.TextWeight, 0.7)
	setDefault(&c.Clustering.ImageWeight, 0.3)
	if c.Clustering.Weighting == "" {
		c.Clustering.Weighting = "tf"
	}
	if c.Workers.Tiers <= 0 {
		c.Workers.Tiers = runtime.NumCPU()
	}
	if c.Workers.Decode <= 0 {
		c.Workers.Decode = 8
	}
}

func setDefault(p **float64, v float64) {
	if *p == nil {
		*p = &v
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Input.URL == "" {
		return fmt.Errorf("input.url is required")
	}

	switch c.Store.Driver {
	case "none":
	case "redis", "valkey":
		if len(c.Store.Addrs) == 0 {
			return fmt.Errorf("store.addrs is required for driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("store.driver must be \"none\", \"redis\" or \"valkey\", got %q", c.Store.Driver)
	}

	cl := c.Clustering
	for name, v := range map[string]*float64{
		"text_threshold":  cl.TextThreshold,
		"image_threshold": cl.ImageThreshold,
		"text_weight":     cl.TextWeight,
		"image_weight":    cl.ImageWeight,
	} {
		if v == nil || math.IsNaN(*v) || *v < 0 || *v > 1 {
			return fmt.Errorf("clustering.%s must be in [0, 1]", name)
		}
	}
	if sum := *cl.TextWeight + *cl.ImageWeight; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("clustering weights must sum to 1, got %g", sum)
	}

	switch cl.Weighting {
	case "tf", "tfidf":
	default:
		return fmt.Errorf("clustering.weighting must be \"tf\" or \"tfidf\", got %q", cl.Weighting)
	}

	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
