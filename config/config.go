package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"connect6/meta"
	"connect6/searcher"
)

var ErrInvalid = errors.New("invalid config")

// Policy names.
const (
	AlphaZero = "alphazero"
	UCT       = "uct"
	Random    = "random"
)

// Evaluator kinds.
const (
	RandomEvaluator = "random"
	RemoteEvaluator = "remote"
)

type Evaluator struct {
	Kind    string        `yaml:"kind"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type UCTConfig struct {
	Iterations int     `yaml:"iterations"`
	CSquared   float64 `yaml:"c_squared"`
}

// Config describes one self-play batch. Black and White name the policy of
// each colour.
type Config struct {
	Games     int                     `yaml:"games"`
	Workers   int                     `yaml:"workers"`
	Seed      uint64                  `yaml:"seed"`
	Black     string                  `yaml:"black"`
	White     string                  `yaml:"white"`
	LogLevel  string                  `yaml:"log_level"`
	Output    string                  `yaml:"output"`
	Metrics   bool                    `yaml:"metrics"`
	Evaluator Evaluator               `yaml:"evaluator"`
	Hyper     searcher.HyperParameter `yaml:"hyper"`
	UCT       UCTConfig               `yaml:"uct"`
}

func Default() Config {
	return Config{
		Games:    meta.GAMES,
		Workers:  runtime.NumCPU(),
		Seed:     meta.SEED,
		Black:    meta.POLICY,
		White:    meta.POLICY,
		LogLevel: meta.LOG_LEVEL,
		Output:   meta.OUTPUT,
		Metrics:  true,
		Evaluator: Evaluator{
			Kind:    RandomEvaluator,
			Timeout: meta.EVALUATOR_TIMEOUT,
		},
		Hyper: searcher.DefaultHyperParameter(),
		UCT: UCTConfig{
			Iterations: meta.UCT_ITERATIONS,
			CSquared:   searcher.CSquared,
		},
	}
}

// DefaultPath is connect6/config.yaml under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "connect6", "config.yaml")
}

// Load reads a YAML config over the defaults. A missing file at the default
// path yields the defaults; a missing explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}

	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Games < 1 {
		return errors.Wrapf(ErrInvalid, "games %d < 1", c.Games)
	}
	if c.Workers < 1 {
		return errors.Wrapf(ErrInvalid, "workers %d < 1", c.Workers)
	}
	for _, policy := range []string{c.Black, c.White} {
		switch policy {
		case AlphaZero, UCT, Random:
		default:
			return errors.Wrapf(ErrInvalid, "unknown policy %q", policy)
		}
	}
	switch c.Evaluator.Kind {
	case RandomEvaluator:
	case RemoteEvaluator:
		if c.Evaluator.URL == "" {
			return errors.Wrap(ErrInvalid, "remote evaluator needs a url")
		}
	default:
		return errors.Wrapf(ErrInvalid, "unknown evaluator %q", c.Evaluator.Kind)
	}
	if c.UCT.Iterations < 1 {
		return errors.Wrapf(ErrInvalid, "uct iterations %d < 1", c.UCT.Iterations)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(ErrInvalid, "log level %q", c.LogLevel)
	}
	if err := c.Hyper.Validate(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// Level returns the configured zerolog level.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
