package driftgo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/driftgo/apd"
)

// StoreConfig locates the representation blobs.
type StoreConfig struct {
	// Backend is one of "local", "s3" or "minio". Default: local.
	Backend string `yaml:"backend"`
	// Path is the root directory of the local backend.
	Path string `yaml:"path"`
	// Bucket and Prefix address the object-store backends.
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	// Endpoint, AccessKey, SecretKey and UseSSL configure MinIO.
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// ScoringConfig mirrors the Scorer options in declarative form.
type ScoringConfig struct {
	// Operations lists what to compute: "apd", "clusters", "combined",
	// "within". Default: apd.
	Operations  []string `yaml:"operations"`
	MinSamples  int      `yaml:"min_samples"`
	Dims        []int    `yaml:"dims"`
	Reducer     string   `yaml:"reducer"`
	Selection   string   `yaml:"selection"`
	KMin        int      `yaml:"k_min"`
	KMax        int      `yaml:"k_max"`
	Seeds       []int64  `yaml:"seeds"`
	Metrics     []string `yaml:"metrics"`
	Normalize   bool     `yaml:"normalize"`
	Parallelism int      `yaml:"parallelism"`
	CombinedDim int      `yaml:"combined_dim"`
}

// Config is the file-level configuration of the CLI.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Corpus1 string        `yaml:"corpus1"`
	Corpus2 string        `yaml:"corpus2"`
	Targets string        `yaml:"targets"`
	Gold    string        `yaml:"gold"`
	Output  string        `yaml:"output"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields and closed-set values.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "", "local", "s3", "minio":
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if c.Corpus1 == "" || c.Corpus2 == "" {
		return fmt.Errorf("config: corpus1 and corpus2 are required")
	}
	if c.Targets == "" {
		return fmt.Errorf("config: targets is required")
	}
	switch c.Scoring.Selection {
	case "", "silhouette", "score":
	default:
		return fmt.Errorf("config: unknown selection policy %q", c.Scoring.Selection)
	}
	switch c.Scoring.Reducer {
	case "", "pca", "spectral":
	default:
		return fmt.Errorf("config: unknown reducer %q", c.Scoring.Reducer)
	}
	for _, name := range c.Scoring.Metrics {
		if _, err := apd.ParseMetric(name); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// ScorerOptions translates the scoring section into functional options.
func (c *Config) ScorerOptions() ([]Option, error) {
	var opts []Option

	sc := c.Scoring
	if sc.MinSamples > 0 {
		opts = append(opts, WithMinSamples(sc.MinSamples))
	}
	if len(sc.Dims) > 0 {
		opts = append(opts, WithDims(sc.Dims...))
	}
	if sc.Reducer != "" {
		opts = append(opts, WithReducerName(sc.Reducer))
	}
	if sc.Selection == "score" {
		opts = append(opts, WithSelection(SelectionScore))
	}
	if sc.KMin > 0 || sc.KMax > 0 {
		opts = append(opts, WithKRange(sc.KMin, sc.KMax))
	}
	if len(sc.Seeds) > 0 {
		opts = append(opts, WithSeeds(sc.Seeds...))
	}
	if len(sc.Metrics) > 0 {
		metrics := make([]apd.Metric, len(sc.Metrics))
		for i, name := range sc.Metrics {
			m, err := apd.ParseMetric(name)
			if err != nil {
				return nil, err
			}
			metrics[i] = m
		}
		opts = append(opts, WithAPDMetrics(metrics...))
	}
	if sc.Normalize {
		opts = append(opts, WithNormalize(true))
	}
	if sc.Parallelism > 1 {
		opts = append(opts, WithParallelism(sc.Parallelism))
	}
	if sc.CombinedDim > 0 {
		opts = append(opts, WithCombinedDim(sc.CombinedDim))
	}

	return opts, nil
}
