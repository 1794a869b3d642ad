package signer

import "errors"

// Signing and validation errors
var (
	// ErrNoKey is returned when attempting to sign with an empty key
	ErrNoKey = errors.New("signer: no signing key provided")

	// ErrMissingSignature is returned when the signature query parameter is missing
	ErrMissingSignature = errors.New("signer: missing signature parameter")

	// ErrMissingExpiration is returned when the expires query parameter is missing
	ErrMissingExpiration = errors.New("signer: missing expires parameter")

	// ErrInvalidExpiration is returned when the expires parameter cannot be parsed
	ErrInvalidExpiration = errors.New("signer: invalid expires parameter")

	// ErrExpired is returned when the signed URL has expired
	ErrExpired = errors.New("signer: URL has expired")

	// ErrInvalidSignature is returned when the signature is invalid
	ErrInvalidSignature = errors.New("signer: invalid signature")
)

// IsAuthError returns true if the error is a signature validation error
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingSignature) ||
		errors.Is(err, ErrMissingExpiration) ||
		errors.Is(err, ErrInvalidExpiration) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrInvalidSignature)
}
