package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/jsonedit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "jsonedit.yaml"

	// EnvConfig names the environment variable holding an explicit config path.
	EnvConfig = "JSONEDIT_CONFIG"

	// DefaultPort is the default server port.
	DefaultPort = 4000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultDocument is the name of the edited document.
	DefaultDocument = "document"

	// DefaultStoreURL keeps documents in memory.
	DefaultStoreURL = "mem://"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "jsonedit"
)

// Config represents the complete jsonedit.yaml configuration.
type Config struct {
	// Document is the name of the document edited by the server.
	Document string `yaml:"document,omitempty"`

	// Server contains HTTP listener configuration.
	Server ServerConfig `yaml:"server,omitempty"`

	// Store selects where documents are persisted.
	Store StoreConfig `yaml:"store,omitempty"`

	// Feed selects where committed values are published.
	Feed FeedConfig `yaml:"feed,omitempty"`

	// Log configures the process logger.
	Log LogConfig `yaml:"log,omitempty"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics,omitempty"`

	// Debug enables runtime checks such as duplicate identity paths.
	Debug bool `yaml:"debug,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`

	// IdleTimeout is how long a detached session is kept, e.g. "5m".
	IdleTimeout string `yaml:"idleTimeout,omitempty"`
}

// StoreConfig contains document storage settings.
type StoreConfig struct {
	// URL is file://dir, mem:// or s3://bucket/prefix.
	URL string `yaml:"url,omitempty"`

	// Region is the AWS region for s3 URLs.
	Region string `yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for S3-compatible services.
	Endpoint string `yaml:"endpoint,omitempty"`
}

// FeedConfig contains change feed settings.
type FeedConfig struct {
	// URL is a gocloud pubsub topic URL. Empty disables the feed.
	URL string `yaml:"url,omitempty"`

	// Log logs every change received back from the feed.
	Log bool `yaml:"log,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level,omitempty"`

	// Format is text or json.
	Format string `yaml:"format,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from jsonedit.yaml in the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadEnv loads the file named by JSONEDIT_CONFIG, falling back to
// jsonedit.yaml in dir.
func LoadEnv(dir string) (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return LoadFile(path)
	}
	return Load(dir)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid YAML")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration back to where it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E120").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Document == "" {
		c.Document = DefaultDocument
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.IdleTimeout == "" {
		c.Server.IdleTimeout = "5m"
	}
	if c.Store.URL == "" {
		c.Store.URL = DefaultStoreURL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}
	if strings.ContainsAny(c.Document, `/\`) {
		return errors.New("E120").
			WithDetailf("document name %q must not contain a path separator", c.Document)
	}
	if _, err := c.SlogLevel(); err != nil {
		return errors.New("E120").WithDetail(err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E120").
			WithDetailf("log format %q must be text or json", c.Log.Format)
	}
	if _, err := c.IdleTimeout(); err != nil {
		return errors.New("E120").
			WithDetailf("server.idleTimeout: %v", err)
	}
	if strings.HasPrefix(c.Store.URL, "s3://") && c.Store.Region == "" {
		return errors.New("E120").
			WithDetail("store.region is required for s3 URLs")
	}
	return nil
}

// Address returns host:port for the HTTP listener.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// IdleTimeout parses server.idleTimeout.
func (c *Config) IdleTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.IdleTimeout)
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// StorePath resolves a relative file:// store URL against the config
// directory.
func (c *Config) StorePath() string {
	path, ok := strings.CutPrefix(c.Store.URL, "file://")
	if !ok || filepath.IsAbs(path) || c.Dir() == "" {
		return c.Store.URL
	}
	return "file://" + filepath.Join(c.Dir(), path)
}
