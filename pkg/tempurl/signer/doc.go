// Package signer implements the HMAC-SHA256 signing primitive used by the
// tempurl service.
//
// A signed path carries two query parameters: the hex-encoded HMAC signature
// over METHOD|PATH|EXPIRES, and the absolute expiry as unix seconds. The
// expiry lives in the URL itself so consumers of a signed URL, including the
// issuing cache, never have to reconstruct it from local clocks.
//
//	s := signer.New()
//	path, err := s.Sign("GET", "/v1/AUTH_demo/objects/abc", key, 20*time.Minute)
//	err = s.ValidateURL("GET", "https://storage.example.com"+path, key)
package signer
