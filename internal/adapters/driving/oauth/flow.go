package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"

	"github.com/PeterTheobald/instapaper-gdocs/internal/logger"
)

// AuthorizeTimeout bounds how long we wait for the user to approve access
// in the browser.
const AuthorizeTimeout = 5 * time.Minute

// Authorize runs the installed-app flow for the given OAuth2 client
// config: start a loopback callback server, send the user to the consent
// page, wait for the redirect, and exchange the code for a token.
func Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	state, err := randomState()
	if err != nil {
		return nil, err
	}

	server := NewCallbackServer(0, state)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("start callback server: %w", err)
	}
	defer server.Stop()

	// The redirect must match the port the server actually got.
	flowCfg := *cfg
	flowCfg.RedirectURL = server.RedirectURI()

	authURL := flowCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Open this URL to authorize access to Google Drive:\n\n  %s\n\n", authURL)
	if err := OpenBrowser(authURL); err != nil {
		logger.Debug("could not open browser: %v", err)
	}

	code, err := server.WaitForCode(AuthorizeTimeout)
	if err != nil {
		return nil, fmt.Errorf("wait for authorization: %w", err)
	}

	token, err := flowCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
