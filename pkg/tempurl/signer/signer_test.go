package signer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	s := New()

	t.Run("appends signature and expiry", func(t *testing.T) {
		signed, err := s.Sign("GET", "/v1/AUTH_demo/objects/abc", "secret", 15*time.Minute)
		require.NoError(t, err)

		u, err := url.Parse(signed)
		require.NoError(t, err)
		assert.Equal(t, "/v1/AUTH_demo/objects/abc", u.Path)

		query := u.Query()
		assert.NotEmpty(t, query.Get("signature"))

		expiresAt, err := strconv.ParseInt(query.Get("expires"), 10, 64)
		require.NoError(t, err)
		assert.InDelta(t, time.Now().Add(15*time.Minute).Unix(), expiresAt, 5)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		_, err := s.Sign("GET", "/v1/AUTH_demo/objects/abc", "", 15*time.Minute)
		assert.ErrorIs(t, err, ErrNoKey)
	})

	t.Run("zero duration uses the default expiration", func(t *testing.T) {
		short := New(WithDefaultExpiration(5 * time.Minute))
		signed, err := short.Sign("GET", "/path", "secret", 0)
		require.NoError(t, err)

		u, err := url.Parse(signed)
		require.NoError(t, err)
		expiresAt, err := strconv.ParseInt(u.Query().Get("expires"), 10, 64)
		require.NoError(t, err)
		assert.InDelta(t, time.Now().Add(5*time.Minute).Unix(), expiresAt, 5)
	})

	t.Run("path with existing query gets ampersand separator", func(t *testing.T) {
		signed, err := s.Sign("GET", "/path?foo=bar", "secret", time.Minute)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(signed, "/path?foo=bar&signature="))
	})
}

func TestValidate(t *testing.T) {
	s := New()
	expiresAt := time.Now().Add(time.Hour).Unix()
	payload := fmt.Sprintf("GET|/path|%d", expiresAt)
	signature := s.generateSignature(payload, "secret")

	t.Run("valid signature", func(t *testing.T) {
		assert.NoError(t, s.Validate("GET", "/path", "secret", signature, expiresAt))
	})

	t.Run("wrong key", func(t *testing.T) {
		err := s.Validate("GET", "/path", "other", signature, expiresAt)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("wrong method", func(t *testing.T) {
		err := s.Validate("PUT", "/path", "secret", signature, expiresAt)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-time.Minute).Unix()
		sig := s.generateSignature(fmt.Sprintf("GET|/path|%d", past), "secret")
		err := s.Validate("GET", "/path", "secret", sig, past)
		assert.ErrorIs(t, err, ErrExpired)
	})
}

func TestValidateURL(t *testing.T) {
	s := New()

	t.Run("round trip", func(t *testing.T) {
		signed, err := s.Sign("GET", "/v1/AUTH_demo/objects/abc", "secret", time.Hour)
		require.NoError(t, err)

		assert.NoError(t, s.ValidateURL("GET", signed, "secret"))
		assert.NoError(t, s.ValidateURL("GET", "http://swift.example.com"+signed, "secret"))
	})

	t.Run("tampered path", func(t *testing.T) {
		signed, err := s.Sign("GET", "/v1/AUTH_demo/objects/abc", "secret", time.Hour)
		require.NoError(t, err)

		tampered := strings.Replace(signed, "/objects/abc", "/objects/xyz", 1)
		err = s.ValidateURL("GET", tampered, "secret")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("tampered expiry", func(t *testing.T) {
		signed, err := s.Sign("GET", "/path", "secret", time.Hour)
		require.NoError(t, err)

		u, err := url.Parse(signed)
		require.NoError(t, err)
		query := u.Query()
		later := time.Now().Add(48 * time.Hour).Unix()
		query.Set("expires", strconv.FormatInt(later, 10))
		u.RawQuery = query.Encode()

		err = s.ValidateURL("GET", u.String(), "secret")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("missing signature", func(t *testing.T) {
		err := s.ValidateURL("GET", "/path?expires=123", "secret")
		assert.ErrorIs(t, err, ErrMissingSignature)
	})

	t.Run("missing expiration", func(t *testing.T) {
		err := s.ValidateURL("GET", "/path?signature=abc", "secret")
		assert.ErrorIs(t, err, ErrMissingExpiration)
	})

	t.Run("malformed expiration", func(t *testing.T) {
		err := s.ValidateURL("GET", "/path?signature=abc&expires=soon", "secret")
		assert.ErrorIs(t, err, ErrInvalidExpiration)
	})

	t.Run("extra query parameters are part of the payload", func(t *testing.T) {
		signed, err := s.Sign("GET", "/path?foo=bar", "secret", time.Hour)
		require.NoError(t, err)
		assert.NoError(t, s.ValidateURL("GET", signed, "secret"))
	})
}

func TestCustomParams(t *testing.T) {
	s := New(
		WithSignatureParam("temp_url_sig"),
		WithExpiresParam("temp_url_expires"),
	)

	signed, err := s.Sign("GET", "/v1/AUTH_demo/objects/abc", "secret", time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.NotEmpty(t, u.Query().Get("temp_url_sig"))
	assert.NotEmpty(t, u.Query().Get("temp_url_expires"))
	assert.Empty(t, u.Query().Get("signature"))

	assert.Equal(t, "temp_url_expires", s.ExpiresParam())
	assert.NoError(t, s.ValidateURL("GET", signed, "secret"))
}

func TestCustomPayloadFunc(t *testing.T) {
	s := New(WithCustomPayloadFunc(func(method, path string, expiresAt int64) string {
		return fmt.Sprintf("%s\n%d\n%s", method, expiresAt, path)
	}))

	signed, err := s.Sign("GET", "/path", "secret", time.Hour)
	require.NoError(t, err)
	assert.NoError(t, s.ValidateURL("GET", signed, "secret"))

	// The default payload format must not validate against the custom one.
	assert.Error(t, New().ValidateURL("GET", signed, "secret"))
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(ErrExpired))
	assert.True(t, IsAuthError(ErrInvalidSignature))
	assert.True(t, IsAuthError(ErrMissingSignature))
	assert.False(t, IsAuthError(nil))
	assert.False(t, IsAuthError(fmt.Errorf("boom")))
}
