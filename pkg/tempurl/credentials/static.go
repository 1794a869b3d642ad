// Package credentials provides CredentialSource implementations for the
// tempurl service.
package credentials

import "context"

// Static is a credential source backed by fixed values. Empty fields are
// reported as absent, which the service maps to a missing-credential error.
type Static struct {
	EndpointURL string
	AccountName string
	Key         string
}

// NewStatic creates a credential source from fixed values
func NewStatic(endpoint, account, key string) *Static {
	return &Static{
		EndpointURL: endpoint,
		AccountName: account,
		Key:         key,
	}
}

func (s *Static) Endpoint(ctx context.Context) (string, error) {
	return s.EndpointURL, nil
}

func (s *Static) Account(ctx context.Context) (string, error) {
	return s.AccountName, nil
}

func (s *Static) SigningKey(ctx context.Context, account string) (string, error) {
	return s.Key, nil
}
