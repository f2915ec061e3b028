// Package config loads the client configuration: defaults, then config.yaml,
// then .env, then system environment variables (highest priority), prefixed
// with HUB_.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix      = "HUB_"
	defaultEnvFile = ".env"
	configFile     = "config.yaml"
)

type Config struct {
	API struct {
		BaseURL string        `koanf:"baseurl"`
		Timeout time.Duration `koanf:"timeout"`
		// Token is a pre-minted bearer token from the identity provider.
		// Empty means anonymous.
		Token string `koanf:"token"`
	} `koanf:"api"`

	Catalog struct {
		PageSize int `koanf:"pagesize"`
	} `koanf:"catalog"`

	Breaker struct {
		Enabled             bool          `koanf:"enabled"`
		ConsecutiveFailures uint32        `koanf:"consecutivefailures"`
		OpenTimeout         time.Duration `koanf:"opentimeout"`
	} `koanf:"breaker"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

// String renders the configuration with the token masked.
func (c *Config) String() string {
	return fmt.Sprintf("api.baseurl=%s, api.timeout=%v, api.token=%s, catalog.pagesize=%d, breaker.enabled=%t, log.level=%s",
		c.API.BaseURL,
		c.API.Timeout,
		maskToken(c.API.Token),
		c.Catalog.PageSize,
		c.Breaker.Enabled,
		c.Log.Level)
}

func maskToken(token string) string {
	if token == "" {
		return "<not configured>"
	}
	return "****"
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.baseurl is not configured")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid api.timeout: %v", c.API.Timeout)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("invalid catalog.pagesize: %d", c.Catalog.PageSize)
	}
	if c.Breaker.Enabled {
		if c.Breaker.ConsecutiveFailures == 0 {
			return fmt.Errorf("breaker.consecutivefailures must be greater than 0")
		}
		if c.Breaker.OpenTimeout <= 0 {
			return fmt.Errorf("invalid breaker.opentimeout: %v", c.Breaker.OpenTimeout)
		}
	}
	return nil
}

func defaults() map[string]any {
	return map[string]any{
		"api.timeout":                 "15s",
		"catalog.pagesize":            12,
		"breaker.enabled":             false,
		"breaker.consecutivefailures": 5,
		"breaker.opentimeout":         "30s",
		"log.level":                   "info",
	}
}

// Load reads the configuration from defaults, the yaml file, the .env file
// and system environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults, lowest priority
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	// 2. Load configuration from yaml file
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config: %v", err)
		}
	}

	// 3. Load environment variables from .env file
	if envFileMap, err := godotenv.Read(defaultEnvFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			envMap[keyTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 4. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", keyTransformer), nil); err != nil {
		log.Printf("WARN: error loading env vars: %v", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// keyTransformer maps HUB_API_BASEURL to api.baseurl.
func keyTransformer(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
	return strings.ReplaceAll(key, "_", ".")
}
