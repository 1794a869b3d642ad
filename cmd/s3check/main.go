package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3credentials "github.com/tendant/simple-tempurl/pkg/tempurl/credentials/s3"
	"github.com/tendant/simple-tempurl/pkg/tempurl/signer"
)

// Connectivity probe for the S3 credential source: optionally uploads a probe
// object, then resolves endpoint, account and signing key from the bucket and
// prints a sample signed URL.
func main() {
	region := flag.String("region", "us-east-1", "AWS region")
	bucket := flag.String("bucket", "", "S3 bucket name")
	accessKey := flag.String("access-key", "", "AWS access key ID")
	secretKey := flag.String("secret-key", "", "AWS secret access key")
	endpoint := flag.String("endpoint", "", "Custom S3 endpoint (for MinIO, etc.)")
	usePathStyle := flag.Bool("use-path-style", false, "Use path-style addressing")
	keyTag := flag.String("key-tag", s3credentials.DefaultKeyTag, "Bucket tag holding the signing key")
	probe := flag.Bool("probe", false, "Upload a probe object before checking credentials")

	// MinIO shortcut
	useMinio := flag.Bool("use-minio", false, "Use MinIO defaults (sets endpoint, path-style, etc.)")
	minioEndpoint := flag.String("minio-endpoint", "http://localhost:9000", "MinIO server endpoint")

	flag.Parse()

	if *useMinio {
		*endpoint = *minioEndpoint
		*usePathStyle = true
		if *accessKey == "" {
			*accessKey = "minioadmin"
		}
		if *secretKey == "" {
			*secretKey = "minioadmin"
		}
	}

	if *bucket == "" {
		log.Fatal("Bucket name is required")
	}

	if *accessKey == "" {
		*accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	}
	if *secretKey == "" {
		*secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}

	ctx := context.Background()

	if *probe {
		if err := uploadProbe(ctx, *region, *bucket, *accessKey, *secretKey, *endpoint, *usePathStyle); err != nil {
			log.Fatalf("Probe upload failed: %v", err)
		}
		fmt.Println("Probe object uploaded")
	}

	source, err := s3credentials.New(s3credentials.Config{
		Region:          *region,
		Bucket:          *bucket,
		AccessKeyID:     *accessKey,
		SecretAccessKey: *secretKey,
		Endpoint:        *endpoint,
		UsePathStyle:    *usePathStyle,
		KeyTag:          *keyTag,
	})
	if err != nil {
		log.Fatalf("Failed to create credential source: %v", err)
	}

	endpointURL, err := source.Endpoint(ctx)
	if err != nil {
		log.Fatalf("Failed to resolve endpoint: %v", err)
	}
	fmt.Printf("endpoint: %s\n", endpointURL)

	account, err := source.Account(ctx)
	if err != nil {
		log.Fatalf("Failed to resolve account: %v", err)
	}
	if account == "" {
		fmt.Println("account:  (not resolvable)")
	} else {
		fmt.Printf("account:  %s\n", account)
	}

	key, err := source.SigningKey(ctx, account)
	if err != nil {
		log.Fatalf("Failed to resolve signing key: %v", err)
	}
	if key == "" {
		fmt.Printf("key:      (no %q bucket tag)\n", *keyTag)
		return
	}
	fmt.Println("key:      resolved")

	path := fmt.Sprintf("/v1/%s/%s/sample-object", account, *bucket)
	signedPath, err := signer.New().Sign("GET", path, key, 15*time.Minute)
	if err != nil {
		log.Fatalf("Failed to sign sample path: %v", err)
	}
	fmt.Printf("sample:   %s%s\n", endpointURL, signedPath)
}

// uploadProbe writes a small object through the transfer manager to verify
// bucket access and credentials.
func uploadProbe(ctx context.Context, region, bucket, accessKey, secretKey, endpoint string, usePathStyle bool) error {
	var awsCfg aws.Config
	var err error

	if accessKey != "" && secretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	}
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = usePathStyle
		})
	}
	client := s3.NewFromConfig(awsCfg, s3Options...)

	uploader := manager.NewUploader(client)
	body := fmt.Sprintf("tempurl probe %s", time.Now().UTC().Format(time.RFC3339))
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(".tempurl-probe"),
		Body:   strings.NewReader(body),
	})
	return err
}
