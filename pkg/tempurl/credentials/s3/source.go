// Package s3 resolves tempurl credentials from an S3-compatible storage
// backend: the signing key is read from the bucket's tagging and the account
// from the bucket owner, so the issuer can operate without the secret being
// present in its own configuration.
package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// DefaultKeyTag is the bucket tag holding the shared signing secret.
const DefaultKeyTag = "temp-url-key"

// Config options for the S3 credential source
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
	KeyTag          string // Bucket tag holding the signing key (default: temp-url-key)
}

// Source implements tempurl.CredentialSource against an S3 bucket
type Source struct {
	client *s3.Client
	bucket string
	config Config
}

// New creates a new S3-backed credential source
func New(config Config) (*Source, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}
	if config.KeyTag == "" {
		config.KeyTag = DefaultKeyTag
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		// Use default credential chain
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	return &Source{
		client: s3.NewFromConfig(awsCfg, s3Options...),
		bucket: config.Bucket,
		config: config,
	}, nil
}

// Endpoint returns the configured custom endpoint, or the virtual-hosted
// bucket endpoint for the configured region.
func (s *Source) Endpoint(ctx context.Context) (string, error) {
	if s.config.Endpoint != "" {
		return s.config.Endpoint, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.config.Region), nil
}

// Account returns the bucket owner id. A bucket whose ACL cannot be read is
// reported as absent rather than as a failure.
func (s *Source) Account(ctx context.Context) (string, error) {
	out, err := s.client.GetBucketAcl(ctx, &s3.GetBucketAclInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		if isAccessError(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read bucket ACL: %w", err)
	}
	if out.Owner == nil {
		return "", nil
	}
	return aws.ToString(out.Owner.ID), nil
}

// SigningKey returns the signing secret stored in the bucket tagging. A
// bucket with no tag set, or without the key tag, is reported as absent.
func (s *Source) SigningKey(ctx context.Context, account string) (string, error) {
	out, err := s.client.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchTagSet" {
			return "", nil
		}
		return "", fmt.Errorf("failed to read bucket tagging: %w", err)
	}

	for _, tag := range out.TagSet {
		if aws.ToString(tag.Key) == s.config.KeyTag {
			return aws.ToString(tag.Value), nil
		}
	}
	return "", nil
}

// isAccessError reports whether the error is a permission problem rather
// than a transport failure.
func isAccessError(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "AccessDenied", "AllAccessDisabled":
		return true
	}
	return false
}
