package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Signer generates and validates HMAC-signed URL paths. The signing key is
// supplied per call, so one Signer can serve multiple storage accounts.
type Signer struct {
	defaultExpiration time.Duration
	signatureParam    string
	expiresParam      string
	customPayloadFunc func(method, path string, expiresAt int64) string
}

// New creates a new Signer with the given options
func New(opts ...Option) *Signer {
	s := &Signer{
		defaultExpiration: 1 * time.Hour,
		signatureParam:    "signature",
		expiresParam:      "expires",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sign generates a signed path for the given HTTP method and path.
// Returns the path with signature and expiration query parameters appended.
//
// Example:
//
//	path, err := signer.Sign("GET", "/v1/AUTH_demo/objects/abc", key, 20*time.Minute)
//	// Returns: /v1/AUTH_demo/objects/abc?signature=ab12...&expires=1696789012
func (s *Signer) Sign(method, path, key string, expiresIn time.Duration) (string, error) {
	if key == "" {
		return "", ErrNoKey
	}

	if expiresIn == 0 {
		expiresIn = s.defaultExpiration
	}

	expiresAt := time.Now().Add(expiresIn).Unix()

	payload := s.createPayload(method, path, expiresAt)
	signature := s.generateSignature(payload, key)

	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return fmt.Sprintf("%s%s%s=%s&%s=%d",
		path, separator, s.signatureParam, signature, s.expiresParam, expiresAt), nil
}

// Validate validates a signature and expiration for a given method and path
func (s *Signer) Validate(method, path, key, signature string, expiresAt int64) error {
	if time.Now().Unix() > expiresAt {
		return ErrExpired
	}

	payload := s.createPayload(method, path, expiresAt)
	expected := s.generateSignature(payload, key)

	// Constant-time comparison to prevent timing attacks
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidSignature
	}

	return nil
}

// ValidateURL validates a complete signed URL produced by Sign, possibly
// prefixed with an endpoint.
func (s *Signer) ValidateURL(method, rawURL, key string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpiration, err)
	}

	query := u.Query()
	signature := query.Get(s.signatureParam)
	expiresStr := query.Get(s.expiresParam)

	if signature == "" {
		return ErrMissingSignature
	}
	if expiresStr == "" {
		return ErrMissingExpiration
	}

	expiresAt, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidExpiration, err)
	}

	// Rebuild the signed path without the signature parameters
	path := u.Path
	query.Del(s.signatureParam)
	query.Del(s.expiresParam)
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}

	return s.Validate(method, path, key, signature, expiresAt)
}

// ExpiresParam returns the name of the expiry query parameter embedded in
// signed paths.
func (s *Signer) ExpiresParam() string {
	return s.expiresParam
}

// createPayload creates the signature payload
// Default format: METHOD|PATH|EXPIRES
// Can be customized using WithCustomPayloadFunc
func (s *Signer) createPayload(method, path string, expiresAt int64) string {
	if s.customPayloadFunc != nil {
		return s.customPayloadFunc(method, path, expiresAt)
	}
	return fmt.Sprintf("%s|%s|%d", method, path, expiresAt)
}

// generateSignature generates the HMAC-SHA256 signature for the given payload
func (s *Signer) generateSignature(payload, key string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
