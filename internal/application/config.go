// Package application wires the question source, search engine and
// recommender into a service and owns the configuration schema.
package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/recommend"
	"github.com/qiyas-prep/smartsearch/internal/search"
)

// EnvPrefix prefixes environment overrides, e.g. SMARTSEARCH_SEARCH_THRESHOLD.
const EnvPrefix = "SMARTSEARCH"

// Config is the complete runtime configuration.
type Config struct {
	// Env selects the logger flavour: "production" logs JSON, anything
	// else logs human-readable output.
	Env string `yaml:"env" mapstructure:"env" validate:"oneof=local development production"`
	// Bank locates the question bank.
	Bank BankConfig `yaml:"bank" mapstructure:"bank"`
	// Search holds per-request search defaults and limits.
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	// Engine sizes the search worker pool.
	Engine search.EngineConfig `yaml:"engine" mapstructure:"engine"`
	// Related holds related-question defaults.
	Related RelatedConfig `yaml:"related" mapstructure:"related"`
	// Recommend holds practice-set defaults.
	Recommend RecommendConfig `yaml:"recommend" mapstructure:"recommend"`
	// Metrics toggles Prometheus collection.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// BankConfig locates the question bank document.
type BankConfig struct {
	Path string `yaml:"path" mapstructure:"path" validate:"required"`
}

// SearchConfig holds search defaults and the request guards applied by
// the middleware chain.
type SearchConfig struct {
	// Threshold is the minimum fuzzy similarity.
	Threshold float64 `yaml:"threshold" mapstructure:"threshold" validate:"gt=0,max=1"`
	// MaxResults caps the result count.
	MaxResults int `yaml:"max_results" mapstructure:"max_results" validate:"min=1,max=1000"`
	// Category is the default category facet; empty searches all.
	Category domain.Category `yaml:"category" mapstructure:"category" validate:"omitempty,facet"`
	// Difficulty is the default difficulty facet; empty searches all.
	Difficulty domain.Difficulty `yaml:"difficulty" mapstructure:"difficulty" validate:"omitempty,difficulty"`
	// Timeout bounds a single search; zero disables the deadline.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"min=0"`
	// RateLimit is the sustained searches per second; zero disables limiting.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit" validate:"min=0"`
	// RateBurst is the token bucket size used with RateLimit.
	RateBurst int `yaml:"rate_burst" mapstructure:"rate_burst" validate:"min=0"`
}

// RelatedConfig holds related-question defaults.
type RelatedConfig struct {
	MaxResults         int  `yaml:"max_results" mapstructure:"max_results" validate:"min=1,max=100"`
	SameCategoryOnly   bool `yaml:"same_category_only" mapstructure:"same_category_only"`
	SameDifficultyOnly bool `yaml:"same_difficulty_only" mapstructure:"same_difficulty_only"`
}

// RecommendConfig holds practice-set defaults.
type RecommendConfig struct {
	MaxEasy       int             `yaml:"max_easy" mapstructure:"max_easy" validate:"min=1,max=100"`
	MaxHard       int             `yaml:"max_hard" mapstructure:"max_hard" validate:"min=1,max=100"`
	CategoryFocus domain.Category `yaml:"category_focus" mapstructure:"category_focus" validate:"omitempty,facet"`
}

// MetricsConfig toggles metrics collection.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// RelatedOptions converts the config section to engine options.
func (c RelatedConfig) RelatedOptions() search.RelatedOptions {
	return search.RelatedOptions{
		MaxResults:         c.MaxResults,
		SameCategoryOnly:   c.SameCategoryOnly,
		SameDifficultyOnly: c.SameDifficultyOnly,
	}
}

// Options converts the config section to recommender options.
func (c RecommendConfig) Options() recommend.Options {
	return recommend.Options{
		MaxEasy:       c.MaxEasy,
		MaxHard:       c.MaxHard,
		CategoryFocus: c.CategoryFocus,
	}
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Env:  "local",
		Bank: BankConfig{Path: "questions.yaml"},
		Search: SearchConfig{
			Threshold:  search.DefaultThreshold,
			MaxResults: search.DefaultMaxResults,
			Timeout:    2 * time.Second,
		},
		Engine: search.DefaultEngineConfig(),
		Related: RelatedConfig{
			MaxResults: search.DefaultRelatedResults,
		},
		Recommend: RecommendConfig{
			MaxEasy: recommend.DefaultMaxEasy,
			MaxHard: recommend.DefaultMaxHard,
		},
	}
}

// Validate checks every section of c.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	if c.Search.RateLimit > 0 && c.Search.RateBurst < 1 {
		return fmt.Errorf("%w: search.rate_burst must be at least 1 when rate_limit is set",
			domain.ErrInvalidConfiguration)
	}
	return nil
}

// LoadConfig reads configuration from path, or from config.yaml in the
// working directory or ./config when path is empty, and applies
// SMARTSEARCH_* environment overrides. A missing default file is not an
// error; a missing explicit path is. Keys that do not belong to Config are
// rejected so typos do not pass silently.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshalling config (check for typos): %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every default key so AutomaticEnv can override
// keys that are absent from the file.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("env", d.Env)
	v.SetDefault("bank.path", d.Bank.Path)

	v.SetDefault("search.threshold", d.Search.Threshold)
	v.SetDefault("search.max_results", d.Search.MaxResults)
	v.SetDefault("search.category", string(d.Search.Category))
	v.SetDefault("search.difficulty", string(d.Search.Difficulty))
	v.SetDefault("search.timeout", d.Search.Timeout)
	v.SetDefault("search.rate_limit", d.Search.RateLimit)
	v.SetDefault("search.rate_burst", d.Search.RateBurst)

	v.SetDefault("engine.workers", d.Engine.Workers)
	v.SetDefault("engine.parallel_threshold", d.Engine.ParallelThreshold)

	v.SetDefault("related.max_results", d.Related.MaxResults)
	v.SetDefault("related.same_category_only", d.Related.SameCategoryOnly)
	v.SetDefault("related.same_difficulty_only", d.Related.SameDifficultyOnly)

	v.SetDefault("recommend.max_easy", d.Recommend.MaxEasy)
	v.SetDefault("recommend.max_hard", d.Recommend.MaxHard)
	v.SetDefault("recommend.category_focus", string(d.Recommend.CategoryFocus))

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
}
