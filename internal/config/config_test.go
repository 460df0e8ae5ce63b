package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	req := require.New(t)

	cfg, err := Load()
	req.NoError(err)

	req.Equal(8080, cfg.Port)
	req.Equal(":8080", cfg.Addr())
	req.Equal(int64(10*1024*1024), cfg.MaxContentLength)
	req.Equal("uploads", cfg.UploadFolder)
	req.Equal("web", cfg.FrontendDir)
	req.Equal(10*time.Minute, cfg.CacheTTL)
	req.False(cfg.VisionConfigured())
	req.False(cfg.NarrationConfigured())
}

func TestLoadFromEnvironment(t *testing.T) {
	req := require.New(t)

	t.Setenv("PORT", "9000")
	t.Setenv("AZURE_VISION_ENDPOINT", "https://vision.example.com")
	t.Setenv("AZURE_VISION_KEY", "key")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MAX_CONTENT_LENGTH", "1024")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load()
	req.NoError(err)

	req.Equal(":9000", cfg.Addr())
	req.True(cfg.VisionConfigured())
	req.True(cfg.NarrationConfigured())
	req.Equal(int64(1024), cfg.MaxContentLength)
	req.Equal(30*time.Second, cfg.CacheTTL)
}

func TestVisionRequiresBothEndpointAndKey(t *testing.T) {
	req := require.New(t)

	t.Setenv("AZURE_VISION_ENDPOINT", "https://vision.example.com")
	cfg, err := Load()
	req.NoError(err)
	req.False(cfg.VisionConfigured(), "endpoint without key must fall back to the mock")
}

func TestOrigins(t *testing.T) {
	tests := []struct {
		description string
		raw         string
		want        []string
	}{
		{"wildcard", "*", []string{"*"}},
		{"empty defaults to wildcard", "", []string{"*"}},
		{"single origin", "https://app.example.com", []string{"https://app.example.com"}},
		{"comma list with spaces", "https://a.example.com, https://b.example.com", []string{"https://a.example.com", "https://b.example.com"}},
		{"blank entries dropped", "https://a.example.com,,  ,", []string{"https://a.example.com"}},
		{"only blanks defaults to wildcard", " , ,", []string{"*"}},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			cfg := Config{FrontendOrigins: tt.raw}
			require.Equal(t, tt.want, cfg.Origins())
		})
	}
}
