package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// Scopes requested by the connector. drive.readonly covers both metadata
// reads and document export.
var Scopes = []string{drive.DriveReadonlyScope}

// DefaultTokenPath is where the authorized token is cached between runs
// when the credentials file does not name another location.
const DefaultTokenPath = "google-authorized-user.json"

// AuthorizeFunc obtains a fresh token interactively. It is injected so
// this package stays free of the browser/callback machinery.
type AuthorizeFunc func(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)

// LoadClientConfig reads an OAuth2 client configuration (the JSON file
// downloaded from the Google Cloud console) and prepares it for the
// installed-app flow.
func LoadClientConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client config: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client config: %w", err)
	}
	return cfg, nil
}

// TokenSource returns a token source backed by the on-disk token cache.
// When no cached token exists, authorize is called once and the resulting
// token is persisted for later runs.
func TokenSource(ctx context.Context, cfg *oauth2.Config, tokenPath string, authorize AuthorizeFunc) (oauth2.TokenSource, error) {
	token, err := tokenFromFile(tokenPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read cached token: %w", err)
		}
		token, err = authorize(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, token); err != nil {
			return nil, err
		}
	}

	// cfg.TokenSource refreshes expired access tokens transparently using
	// the cached refresh token.
	return cfg.TokenSource(ctx, token), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse cached token %s: %w", path, err)
	}
	return &token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("cache token: %w", err)
	}
	return nil
}
