// Package tempurl issues time-limited, unauthenticated download URLs for
// objects stored in a container-partitioned object store.
//
// The package provides:
//   - a Service that resolves an object's container, signs a download path,
//     and caches issued URLs so that repeated requests for the same object do
//     not re-sign on every call
//   - a URLCache with proactive expiry-based eviction: a cached URL is only
//     reused while it will still be valid once the caller is expected to
//     start the download
//   - consumer-declared interfaces (Catalog, CredentialSource, URLSigner,
//     EventSink, Metrics) whose implementations live in subpackages
//
// Basic usage:
//
//	svc, err := tempurl.New(
//	    tempurl.WithCatalog(memory.New()),
//	    tempurl.WithSigner(signer.New()),
//	    tempurl.WithSigningConfig(tempurl.SigningConfig{
//	        CacheEnabled:       true,
//	        URLDuration:        20 * time.Minute,
//	        ExpectedStartDelay: 2 * time.Minute,
//	        ContainerBaseName:  "objects",
//	        Account:            "AUTH_demo",
//	        APIVersion:         "v1",
//	        EndpointURL:        "https://storage.example.com",
//	        SigningKey:         "secret",
//	    }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	issued, err := svc.IssueDownloadURL(ctx, tempurl.IssueURLRequest{ObjectID: id})
package tempurl
