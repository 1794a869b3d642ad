package signer

import "time"

// Option is a functional option for configuring a Signer
type Option func(*Signer)

// WithDefaultExpiration sets the expiration used when Sign is called with a
// zero duration. Default is 1 hour.
func WithDefaultExpiration(duration time.Duration) Option {
	return func(s *Signer) {
		s.defaultExpiration = duration
	}
}

// WithSignatureParam overrides the query parameter name carrying the
// signature. Default is "signature".
func WithSignatureParam(name string) Option {
	return func(s *Signer) {
		s.signatureParam = name
	}
}

// WithExpiresParam overrides the query parameter name carrying the absolute
// expiry. Default is "expires".
func WithExpiresParam(name string) Option {
	return func(s *Signer) {
		s.expiresParam = name
	}
}

// WithCustomPayloadFunc allows customizing the signature payload format
// The function receives (method, path, expiresAt) and should return the payload string
// Default format is: METHOD|PATH|EXPIRES
func WithCustomPayloadFunc(fn func(method, path string, expiresAt int64) string) Option {
	return func(s *Signer) {
		s.customPayloadFunc = fn
	}
}
