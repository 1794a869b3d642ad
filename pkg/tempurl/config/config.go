package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-tempurl/pkg/tempurl"
	memorycatalog "github.com/tendant/simple-tempurl/pkg/tempurl/catalog/memory"
	pgcatalog "github.com/tendant/simple-tempurl/pkg/tempurl/catalog/postgres"
	"github.com/tendant/simple-tempurl/pkg/tempurl/credentials"
	s3credentials "github.com/tendant/simple-tempurl/pkg/tempurl/credentials/s3"
	"github.com/tendant/simple-tempurl/pkg/tempurl/signer"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:            "8080",
		Environment:     "development",
		CatalogType:     "memory",
		DBSchema:        "tempurl",
		CredentialsType: "static",
		Signing: tempurl.SigningConfig{
			CacheEnabled:       true,
			URLDuration:        20 * time.Minute,
			ExpectedStartDelay: 0,
			ContainerBaseName:  "objects",
			APIVersion:         "v1",
		},
		MinAPIVersion:      1,
		EnableEventLogging: true,
	}
}

// ServerConfig represents server configuration for the simple-tempurl service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Catalog configuration
	CatalogURL  string
	CatalogType string // "memory", "postgres"
	DBSchema    string // Postgres schema to use (default: tempurl)

	// Credential source configuration
	CredentialsType string // "static", "s3"
	S3              S3CredentialsConfig

	// Signing configuration consumed by the issuer on every call
	Signing tempurl.SigningConfig

	// Minimum accepted API minor version
	MinAPIVersion int

	// Server options
	EnableEventLogging bool

	// Metrics is an optional cache metrics backend, set programmatically
	Metrics tempurl.Metrics
}

// WithMetrics sets the cache metrics backend on the built service
func WithMetrics(metrics tempurl.Metrics) Option {
	return func(c *ServerConfig) error {
		c.Metrics = metrics
		return nil
	}
}

// S3CredentialsConfig holds the S3 credential source settings
type S3CredentialsConfig struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UsePathStyle    bool
	KeyTag          string
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.CatalogType != "memory" && c.CatalogType != "postgres" {
		return errors.New("catalog_type must be 'memory' or 'postgres'")
	}

	if c.CatalogType == "postgres" && c.CatalogURL == "" {
		return errors.New("catalog_url is required when using postgres")
	}

	if c.CredentialsType != "static" && c.CredentialsType != "s3" {
		return errors.New("credentials_type must be 'static' or 's3'")
	}

	if c.CredentialsType == "s3" && c.S3.Bucket == "" {
		return errors.New("s3 bucket is required when using s3 credentials")
	}

	if err := c.Signing.Validate(); err != nil {
		return err
	}

	return nil
}

// BuildService creates a tempurl.Service instance from the server configuration
func (c *ServerConfig) BuildService() (tempurl.Service, error) {
	var options []tempurl.Option

	catalog, err := c.buildCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	options = append(options, tempurl.WithCatalog(catalog))

	creds, err := c.buildCredentialSource()
	if err != nil {
		return nil, fmt.Errorf("failed to build credential source: %w", err)
	}
	options = append(options, tempurl.WithCredentialSource(creds))

	options = append(options,
		tempurl.WithSigner(signer.New()),
		tempurl.WithSigningConfig(c.Signing),
	)

	if c.EnableEventLogging {
		options = append(options, tempurl.WithEventSink(tempurl.NewLoggingEventSink(nil)))
	}

	if c.Metrics != nil {
		options = append(options, tempurl.WithMetrics(c.Metrics))
	}

	return tempurl.New(options...)
}

// buildCatalog creates a Catalog based on the configuration
func (c *ServerConfig) buildCatalog() (tempurl.Catalog, error) {
	switch c.CatalogType {
	case "memory":
		return memorycatalog.New(), nil
	case "postgres":
		if c.CatalogURL == "" {
			return nil, errors.New("catalog_url is required for postgres")
		}
		cfg, err := pgxpool.ParseConfig(c.CatalogURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse CATALOG_URL: %w", err)
		}
		schema := c.DBSchema
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			if schema == "" {
				return nil
			}
			// set search_path for this session
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", schema))
			return err
		}
		pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return pgcatalog.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported catalog type: %s", c.CatalogType)
	}
}

// buildCredentialSource creates a CredentialSource based on the configuration
func (c *ServerConfig) buildCredentialSource() (tempurl.CredentialSource, error) {
	switch c.CredentialsType {
	case "static":
		return credentials.NewStatic(
			c.Signing.EndpointURL,
			c.Signing.Account,
			c.Signing.SigningKey,
		), nil
	case "s3":
		return s3credentials.New(s3credentials.Config{
			Region:          c.S3.Region,
			Bucket:          c.S3.Bucket,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			Endpoint:        c.S3.Endpoint,
			UsePathStyle:    c.S3.UsePathStyle,
			KeyTag:          c.S3.KeyTag,
		})
	default:
		return nil, fmt.Errorf("unsupported credentials type: %s", c.CredentialsType)
	}
}
