package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
)

// Provider strategies.
const (
	StrategyClassifier = "classifier"
	StrategyGenerative = "generative"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageMinio  = "minio"
)

const (
	defaultPort           = 4000
	defaultTimeoutSeconds = 60
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`

	Provider struct {
		Strategy string `yaml:"strategy"`
		APIKey   string `yaml:"apiKey"`
		// Model overrides the generative model name.
		Model string `yaml:"model"`
		// BaseURL overrides the classifier inference endpoint.
		BaseURL        string `yaml:"baseURL"`
		TimeoutSeconds int    `yaml:"timeoutSeconds"`
	} `yaml:"provider"`

	Storage struct {
		Backend string `yaml:"backend"`
		Minio   struct {
			Endpoint   string `yaml:"endpoint"`
			AccessKey  string `yaml:"accessKey"`
			SecretKey  string `yaml:"secretKey"`
			BucketName string `yaml:"bucketName"`
			Region     string `yaml:"region"`
			UseSSL     bool   `yaml:"useSSL"`
		} `yaml:"minio"`
	} `yaml:"storage"`

	Logging struct {
		JSON  bool `yaml:"json"`
		Debug bool `yaml:"debug"`
	} `yaml:"logging"`
}

// Load reads config from path, applies environment overrides, fills defaults
// and validates. A missing provider API key is a hard configuration error:
// the service must never fabricate scores because credentials are absent.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// No file; environment-only configuration.
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = p
	}
	if v := os.Getenv("PROVIDER_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Provider.Strategy == "" {
		c.Provider.Strategy = StrategyGenerative
	}
	if c.Provider.TimeoutSeconds == 0 {
		c.Provider.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageMemory
	}
}

func (c *Config) validate() error {
	switch c.Provider.Strategy {
	case StrategyClassifier, StrategyGenerative:
	default:
		return fmt.Errorf("unknown provider strategy %q", c.Provider.Strategy)
	}
	switch c.Storage.Backend {
	case StorageMemory, StorageMinio:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("%w: set provider.apiKey or PROVIDER_API_KEY", analysis.ErrMissingAPIKey)
	}
	return nil
}
