// Package config loads the service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every recognized option. Absence of backend credentials
// selects the mock fallback path; it never fails startup.
type Config struct {
	Port int `envconfig:"PORT" default:"8080"`

	AzureVisionEndpoint string `envconfig:"AZURE_VISION_ENDPOINT"`
	AzureVisionKey      string `envconfig:"AZURE_VISION_KEY"`
	OpenAIAPIKey        string `envconfig:"OPENAI_API_KEY"`

	FrontendOrigins  string `envconfig:"FRONTEND_ORIGINS" default:"*"`
	MaxContentLength int64  `envconfig:"MAX_CONTENT_LENGTH" default:"10485760"`
	UploadFolder     string `envconfig:"UPLOAD_FOLDER" default:"uploads"`
	FrontendDir      string `envconfig:"FRONTEND_DIR" default:"web"`

	RedisAddr string        `envconfig:"REDIS_ADDR"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"10m"`
}

// Load reads .env if present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}

// VisionConfigured reports whether the live vision backend can be used.
func (c Config) VisionConfigured() bool {
	return c.AzureVisionEndpoint != "" && c.AzureVisionKey != ""
}

// NarrationConfigured reports whether the live narration backend can be used.
func (c Config) NarrationConfigured() bool {
	return c.OpenAIAPIKey != ""
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Origins splits the CORS allow-list, trimming blanks. A lone "*" means
// any origin.
func (c Config) Origins() []string {
	if c.FrontendOrigins == "*" || c.FrontendOrigins == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(c.FrontendOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
