package tempurl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-tempurl/pkg/tempurl/container"
)

// accountSuffixPattern strips a trailing /v1/AUTH_<tenant> segment that some
// catalog-provided endpoints carry; the account is appended back when the
// storage path is built.
var accountSuffixPattern = regexp.MustCompile(`/v1/AUTH_[^/]+/?$`)

// service implements the Service interface
type service struct {
	catalog Catalog
	creds   CredentialSource
	signer  URLSigner
	cfg     SigningConfig
	cache   *URLCache
	events  EventSink
	metrics Metrics
	now     func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithCatalog sets the object metadata catalog for the service
func WithCatalog(catalog Catalog) Option {
	return func(s *service) {
		s.catalog = catalog
	}
}

// WithCredentialSource sets the fallback source for endpoint, account and
// signing key when they are not present in the signing configuration
func WithCredentialSource(creds CredentialSource) Option {
	return func(s *service) {
		s.creds = creds
	}
}

// WithSigner sets the signing primitive for the service
func WithSigner(signer URLSigner) Option {
	return func(s *service) {
		s.signer = signer
	}
}

// WithSigningConfig sets the process-wide signing configuration snapshot
func WithSigningConfig(cfg SigningConfig) Option {
	return func(s *service) {
		s.cfg = cfg
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.events = sink
	}
}

// WithMetrics sets the cache metrics backend
func WithMetrics(metrics Metrics) Option {
	return func(s *service) {
		s.metrics = metrics
	}
}

// WithClock overrides the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		now: time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if s.signer == nil {
		return nil, fmt.Errorf("signer is required")
	}
	if s.metrics == nil {
		s.metrics = NoopMetrics{}
	}
	s.cache = NewURLCache(s.metrics)

	return s, nil
}

func (s *service) IssueDownloadURL(ctx context.Context, req IssueURLRequest) (*IssuedURL, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	info, err := s.catalog.GetObject(ctx, req.ObjectID)
	if err != nil {
		return nil, &IssueError{ObjectID: req.ObjectID, Op: "lookup", Err: err}
	}
	if info.ID == uuid.Nil {
		return nil, &IssueError{ObjectID: req.ObjectID, Op: "lookup", Err: ErrObjectUnacceptable}
	}
	if !info.Status.Available() {
		return nil, &IssueError{
			ObjectID: req.ObjectID,
			Op:       "lookup",
			Err:      fmt.Errorf("%w: status %q", ErrObjectNotAvailable, info.Status),
		}
	}

	endpoint, err := s.resolveEndpoint(ctx)
	if err != nil {
		return nil, &IssueError{ObjectID: req.ObjectID, Op: "resolve_endpoint", Err: err}
	}

	account, err := s.resolveAccount(ctx)
	if err != nil {
		return nil, &IssueError{ObjectID: req.ObjectID, Op: "resolve_account", Err: err}
	}

	key, err := s.resolveSigningKey(ctx, account)
	if err != nil {
		return nil, &IssueError{ObjectID: req.ObjectID, Op: "resolve_key", Err: err}
	}

	objectID := info.ID.String()
	containerName := s.ResolveContainer(objectID)
	path := fmt.Sprintf("/%s/%s/%s/%s", s.cfg.APIVersion, account, containerName, objectID)

	issued, err := s.issue(ctx, info.ID, containerName, method, path, key, endpoint)
	if err != nil {
		return nil, &IssueError{ObjectID: info.ID, Op: "sign", Err: err}
	}
	return issued, nil
}

// issue returns a cached URL when one is still usable, otherwise signs the
// path and caches the result. The cache is only written on full success so
// every cached entry is a well-formed, successfully issued URL. Only download
// (GET) URLs are cached: the signature binds the method, so a cached entry
// must never be served to a request for a different method.
func (s *service) issue(ctx context.Context, id uuid.UUID, containerName, method, path, key, endpoint string) (*IssuedURL, error) {
	cacheable := s.cfg.CacheEnabled && method == http.MethodGet

	var horizon int64
	if cacheable {
		horizon = s.now().Unix() + int64(s.cfg.ExpectedStartDelay/time.Second)
		for _, evicted := range s.cache.Prune(horizon) {
			if s.events != nil {
				s.events.URLEvicted(ctx, evicted)
			}
		}
		if cached, expiresAt, ok := s.cache.Lookup(id, horizon); ok {
			if s.events != nil {
				s.events.URLReused(ctx, id, cached)
			}
			return &IssuedURL{
				ObjectID:  id,
				URL:       cached,
				Container: containerName,
				ExpiresAt: time.Unix(expiresAt, 0).UTC(),
				FromCache: true,
			}, nil
		}
	}

	signedPath, err := s.signer.Sign(method, path, key, s.cfg.URLDuration)
	if err != nil {
		return nil, err
	}
	signedURL := endpoint + signedPath

	expiresAt, err := parseExpiry(signedURL, s.signer.ExpiresParam())
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.cache.Store(id, signedURL, expiresAt)
	}

	expires := time.Unix(expiresAt, 0).UTC()
	if s.events != nil {
		s.events.URLIssued(ctx, id, signedURL, expires)
	}
	return &IssuedURL{
		ObjectID:  id,
		URL:       signedURL,
		Container: containerName,
		ExpiresAt: expires,
	}, nil
}

func (s *service) GetObjectInfo(ctx context.Context, id uuid.UUID) (*ObjectInfo, error) {
	return s.catalog.GetObject(ctx, id)
}

func (s *service) ResolveContainer(objectID string) string {
	return container.Resolve(objectID, s.cfg.ContainerBaseName, s.cfg.ContainerSeedLength)
}

func (s *service) Invalidate(ctx context.Context, id uuid.UUID) bool {
	removed := s.cache.Remove(id)
	if removed && s.events != nil {
		s.events.URLEvicted(ctx, id)
	}
	return removed
}

func (s *service) InvalidateAll(ctx context.Context) int {
	return s.cache.Clear()
}

func (s *service) CachedEntries() []CachedEntry {
	return s.cache.Snapshot()
}

func (s *service) CacheStats() CacheStats {
	return s.cache.Stats()
}

func (s *service) resolveEndpoint(ctx context.Context) (string, error) {
	endpoint := s.cfg.EndpointURL
	if endpoint == "" && s.creds != nil {
		resolved, err := s.creds.Endpoint(ctx)
		if err != nil {
			return "", fmt.Errorf("resolving endpoint: %w", err)
		}
		endpoint = resolved
	}
	if endpoint == "" {
		return "", fmt.Errorf("%w: signed URLs require a storage endpoint URL, but none is configured and none could be resolved", ErrMissingCredential)
	}
	endpoint = strings.TrimRight(endpoint, "/")
	return accountSuffixPattern.ReplaceAllString(endpoint, ""), nil
}

func (s *service) resolveAccount(ctx context.Context) (string, error) {
	account := s.cfg.Account
	if account == "" && s.creds != nil {
		resolved, err := s.creds.Account(ctx)
		if err != nil {
			return "", fmt.Errorf("resolving account: %w", err)
		}
		account = resolved
	}
	if account == "" {
		return "", fmt.Errorf("%w: signed URLs require a storage account, but none is configured and none could be resolved", ErrMissingCredential)
	}
	return account, nil
}

func (s *service) resolveSigningKey(ctx context.Context, account string) (string, error) {
	key := s.cfg.SigningKey
	if key == "" && s.creds != nil {
		resolved, err := s.creds.SigningKey(ctx, account)
		if err != nil {
			return "", fmt.Errorf("resolving signing key: %w", err)
		}
		key = resolved
	}
	if key == "" {
		return "", fmt.Errorf("%w: signed URLs require a shared signing secret, but none is configured and none could be resolved for the account", ErrMissingCredential)
	}
	return key, nil
}

// parseExpiry extracts the absolute expiry the signer embedded in the URL.
// The cache deadline is parsed from the signed URL rather than recomputed so
// the cache can never disagree with the signer about expiry.
func parseExpiry(signedURL, param string) (int64, error) {
	u, err := url.Parse(signedURL)
	if err != nil {
		return 0, fmt.Errorf("parsing signed URL: %w", err)
	}
	raw := u.Query().Get(param)
	if raw == "" {
		return 0, fmt.Errorf("signed URL has no %q query parameter", param)
	}
	expiresAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q query parameter: %w", param, err)
	}
	return expiresAt, nil
}
