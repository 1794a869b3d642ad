package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-tempurl/pkg/tempurl"
	memorycatalog "github.com/tendant/simple-tempurl/pkg/tempurl/catalog/memory"
	"github.com/tendant/simple-tempurl/pkg/tempurl/signer"
)

// One-shot issuer: seeds a memory catalog with the requested object and
// prints its signed download URL. Useful for trying out container sharding
// and signing parameters without a running server.
func main() {
	objectID := flag.String("object-id", "", "Object UUID to issue a URL for (default: random)")
	endpoint := flag.String("endpoint", "http://localhost:8080", "Storage endpoint URL")
	account := flag.String("account", "AUTH_demo", "Storage account")
	apiVersion := flag.String("api-version", "v1", "Storage API version")
	key := flag.String("key", "", "Signing key (required)")
	containerName := flag.String("container", "objects", "Container base name")
	seed := flag.Int("seed", 0, "Container sharding seed length (0..32)")
	duration := flag.Duration("duration", 20*time.Minute, "URL validity duration")
	delay := flag.Duration("delay", 1*time.Minute, "Expected download start delay")

	flag.Parse()

	if *key == "" {
		log.Fatal("a signing key is required (-key)")
	}

	id := uuid.New()
	if *objectID != "" {
		parsed, err := uuid.Parse(*objectID)
		if err != nil {
			log.Fatalf("invalid object id: %v", err)
		}
		id = parsed
	}

	ctx := context.Background()

	catalog := memorycatalog.New()
	if err := catalog.PutObject(ctx, &tempurl.ObjectInfo{
		ID:     id,
		Name:   "demo-object",
		Status: tempurl.ObjectStatusAvailable,
	}); err != nil {
		log.Fatalf("seeding catalog: %v", err)
	}

	svc, err := tempurl.New(
		tempurl.WithCatalog(catalog),
		tempurl.WithSigner(signer.New()),
		tempurl.WithSigningConfig(tempurl.SigningConfig{
			CacheEnabled:        true,
			URLDuration:         *duration,
			ExpectedStartDelay:  *delay,
			ContainerSeedLength: *seed,
			ContainerBaseName:   *containerName,
			Account:             *account,
			APIVersion:          *apiVersion,
			EndpointURL:         *endpoint,
			SigningKey:          *key,
		}),
	)
	if err != nil {
		log.Fatalf("building service: %v", err)
	}

	issued, err := svc.IssueDownloadURL(ctx, tempurl.IssueURLRequest{ObjectID: id})
	if err != nil {
		log.Fatalf("issuing URL: %v", err)
	}

	fmt.Printf("object:    %s\n", issued.ObjectID)
	fmt.Printf("container: %s\n", issued.Container)
	fmt.Printf("expires:   %s\n", issued.ExpiresAt.Format(time.RFC3339))
	fmt.Printf("url:       %s\n", issued.URL)
}
