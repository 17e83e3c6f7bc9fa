package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/bcdannyboy/bsmvol/bsm"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds solver, batch and logging settings.
type Config struct {
	Solver struct {
		MaxIterations int     `yaml:"max_iterations"`
		Tolerance     float64 `yaml:"tolerance"`
		InitialSigma  float64 `yaml:"initial_sigma"`
	} `yaml:"solver"`
	Chain struct {
		Workers  int  `yaml:"workers"`
		Progress bool `yaml:"progress"`
	} `yaml:"chain"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

const defaultInitialSigma = 0.5

func Default() *Config {
	cfg := &Config{}
	cfg.Solver.MaxIterations = bsm.DefaultIterations
	cfg.Solver.Tolerance = bsm.DefaultTolerance
	cfg.Solver.InitialSigma = defaultInitialSigma
	cfg.Log.Level = "info"
	return cfg
}

// Load reads a YAML file over the defaults, loads .env files (".env" when
// none are given), then applies BSM_* environment overrides. Missing files
// are skipped; path may be empty.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("BSM_MAX_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BSM_MAX_ITERATIONS: %w", err)
		}
		c.Solver.MaxIterations = n
	}
	if v := os.Getenv("BSM_TOLERANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("BSM_TOLERANCE: %w", err)
		}
		c.Solver.Tolerance = f
	}
	if v := os.Getenv("BSM_INITIAL_SIGMA"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("BSM_INITIAL_SIGMA: %w", err)
		}
		c.Solver.InitialSigma = f
	}
	if v := os.Getenv("BSM_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BSM_WORKERS: %w", err)
		}
		c.Chain.Workers = n
	}
	if v := os.Getenv("BSM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Solver.MaxIterations <= 0 {
		return fmt.Errorf("solver.max_iterations must be positive, got %d", c.Solver.MaxIterations)
	}
	if !(c.Solver.Tolerance > 0) {
		return fmt.Errorf("solver.tolerance must be positive, got %g", c.Solver.Tolerance)
	}
	if !(c.Solver.InitialSigma > 0) {
		return fmt.Errorf("solver.initial_sigma must be positive, got %g", c.Solver.InitialSigma)
	}
	if c.Chain.Workers < 0 {
		return fmt.Errorf("chain.workers must not be negative, got %d", c.Chain.Workers)
	}
	return nil
}

func (c *Config) SolverConfig() bsm.SolverConfig {
	return bsm.SolverConfig{
		MaxIterations: c.Solver.MaxIterations,
		Tolerance:     c.Solver.Tolerance,
	}
}
