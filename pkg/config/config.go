// Package config loads runtime settings for lalg tools.
//
// Precedence, lowest first: Default, a YAML file, a .env file found in the
// working directory or one of its parents, then LALG_* environment
// variables. Variables already set in the environment win over .env.
package config

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/lalg/async"
	"github.com/YuminosukeSato/lalg/core/parallel"
	"github.com/YuminosukeSato/lalg/matrix"
	"github.com/YuminosukeSato/lalg/pkg/errors"
	"github.com/YuminosukeSato/lalg/pkg/log"
)

// Environment variable names.
const (
	EnvWorkers           = "LALG_WORKERS"
	EnvQueueSize         = "LALG_QUEUE_SIZE"
	EnvParallelThreshold = "LALG_PARALLEL_THRESHOLD"
	EnvMaxPrintExtent    = "LALG_MAX_PRINT_EXTENT"
	EnvSeed              = "LALG_SEED"
	EnvLogLevel          = "LALG_LOG_LEVEL"
)

// envSearchDepth is how many directories LoadEnv walks up looking for .env.
const envSearchDepth = 5

// Config holds process-wide settings.
type Config struct {
	// Workers is the async worker pool size.
	Workers int `yaml:"workers"`
	// QueueSize bounds the number of tasks waiting for a worker.
	QueueSize int `yaml:"queue_size"`
	// ParallelThreshold is the element count above which elementwise
	// kernels fan out across goroutines.
	ParallelThreshold int `yaml:"parallel_threshold"`
	// MaxPrintExtent is the number of rows and columns String prints.
	MaxPrintExtent int `yaml:"max_print_extent"`
	// Seed seeds the process-wide random generator.
	Seed uint64 `yaml:"seed"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Workers:           runtime.NumCPU(),
		QueueSize:         async.DefaultQueueSize,
		ParallelThreshold: parallel.DefaultThreshold,
		MaxPrintExtent:    matrix.DefaultMaxPrintExtent,
		Seed:              matrix.DefaultSeed,
		LogLevel:          "warn",
	}
}

// LoadFile returns Default overlaid with the YAML file at path. Keys absent
// from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open config %s", path)
	}
	defer f.Close()

	cfg := Default()
	if err := cfg.decode(f); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// LoadEnv returns Default overlaid with the environment.
func LoadEnv() (*Config, error) {
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load applies every source in precedence order and validates the result.
// An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv loads the nearest .env file and overlays LALG_* variables onto c.
func (c *Config) ApplyEnv() error {
	if err := loadEnvFile(); err != nil {
		return errors.Wrap(err, "load .env")
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvWorkers, &c.Workers},
		{EnvQueueSize, &c.QueueSize},
		{EnvParallelThreshold, &c.ParallelThreshold},
		{EnvMaxPrintExtent, &c.MaxPrintExtent},
	}
	for _, v := range ints {
		if err := envInt(v.key, v.dst); err != nil {
			return err
		}
	}
	if val := os.Getenv(EnvSeed); val != "" {
		seed, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return errors.NewValidationError(EnvSeed, "must be an unsigned integer", val)
		}
		c.Seed = seed
	}
	if val := os.Getenv(EnvLogLevel); val != "" {
		c.LogLevel = val
	}
	return nil
}

func envInt(key string, dst *int) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return errors.NewValidationError(key, "must be an integer", val)
	}
	*dst = i
	return nil
}

// loadEnvFile loads the first .env found walking up from the working directory.
func loadEnvFile() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	for i := 0; i < envSearchDepth; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	switch {
	case c.Workers < 1:
		return errors.NewValidationError("workers", "must be at least 1", c.Workers)
	case c.QueueSize < 0:
		return errors.NewValidationError("queue_size", "must not be negative", c.QueueSize)
	case c.ParallelThreshold < 1:
		return errors.NewValidationError("parallel_threshold", "must be at least 1", c.ParallelThreshold)
	case c.MaxPrintExtent < 1:
		return errors.NewValidationError("max_print_extent", "must be at least 1", c.MaxPrintExtent)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Apply installs the process-wide settings: the random seed, the parallel
// threshold and a logger writing to stderr.
func (c *Config) Apply() error {
	return c.ApplyTo(os.Stderr)
}

// ApplyTo is Apply with logs written to w.
func (c *Config) ApplyTo(w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	matrix.Seed(c.Seed)
	parallel.SetThreshold(c.ParallelThreshold)
	return log.SetupLoggerTo(w, c.LogLevel)
}

// RunnerOptions returns the async.Runner options described by c.
func (c *Config) RunnerOptions() []async.Option {
	return []async.Option{
		async.WithWorkers(c.Workers),
		async.WithQueueSize(c.QueueSize),
		async.WithLogger(log.GetLoggerWithName("async")),
	}
}
