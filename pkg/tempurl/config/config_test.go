package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-tempurl/pkg/tempurl"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.CatalogType)
	assert.Equal(t, "static", cfg.CredentialsType)
	assert.Equal(t, "tempurl", cfg.DBSchema)
	assert.True(t, cfg.Signing.CacheEnabled)
	assert.Equal(t, 20*time.Minute, cfg.Signing.URLDuration)
	assert.Equal(t, "objects", cfg.Signing.ContainerBaseName)
	assert.Equal(t, "v1", cfg.Signing.APIVersion)
	assert.Equal(t, 1, cfg.MinAPIVersion)
}

func TestLoadOptionError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(func(c *ServerConfig) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestLoadNilOption(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *ServerConfig) {},
		},
		{
			name:    "empty port",
			mutate:  func(c *ServerConfig) { c.Port = "" },
			wantErr: "port",
		},
		{
			name:    "unknown catalog type",
			mutate:  func(c *ServerConfig) { c.CatalogType = "redis" },
			wantErr: "catalog_type",
		},
		{
			name:    "postgres without url",
			mutate:  func(c *ServerConfig) { c.CatalogType = "postgres" },
			wantErr: "catalog_url",
		},
		{
			name:    "unknown credentials type",
			mutate:  func(c *ServerConfig) { c.CredentialsType = "vault" },
			wantErr: "credentials_type",
		},
		{
			name:    "s3 without bucket",
			mutate:  func(c *ServerConfig) { c.CredentialsType = "s3" },
			wantErr: "bucket",
		},
		{
			name: "invalid signing config",
			mutate: func(c *ServerConfig) {
				c.Signing.URLDuration = time.Second
				c.Signing.ExpectedStartDelay = time.Minute
			},
			wantErr: "start delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBuildServiceMemory(t *testing.T) {
	cfg := defaults()
	cfg.Signing.EndpointURL = "http://swift.example.com"
	cfg.Signing.Account = "AUTH_test"
	cfg.Signing.SigningKey = "secret"

	svc, err := cfg.BuildService()
	require.NoError(t, err)
	assert.NotNil(t, svc)
	assert.Equal(t, "objects", svc.ResolveContainer("3a1bcd00"))
}

func TestBuildServiceWithMetrics(t *testing.T) {
	cfg := defaults()
	cfg.Metrics = tempurl.NoopMetrics{}

	svc, err := cfg.BuildService()
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestBuildServiceUnknownCatalog(t *testing.T) {
	cfg := defaults()
	cfg.CatalogType = "redis"

	_, err := cfg.BuildService()
	assert.Error(t, err)
}
