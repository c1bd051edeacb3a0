package instapaper

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the Instapaper API host.
	DefaultBaseURL = "https://www.instapaper.com"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	accessTokenPath = "/api/1/oauth/access_token"
)

// Ensure Client implements the port.
var _ driven.BookmarkSource = (*Client)(nil)

// Credentials holds everything needed for the xAuth token exchange.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Username       string
	Password       string
}

// Client is an authenticated Instapaper API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Authenticate performs the xAuth exchange and returns a client whose
// requests are OAuth1-signed with the obtained token.
func Authenticate(ctx context.Context, creds Credentials) (*Client, error) {
	return authenticate(ctx, creds, DefaultBaseURL)
}

func authenticate(ctx context.Context, creds Credentials, baseURL string) (*Client, error) {
	config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)

	// The token exchange itself is signed with consumer credentials only:
	// an empty token is what xAuth expects.
	bootstrap := &Client{
		httpClient: signedHTTPClient(ctx, config, oauth1.NewToken("", "")),
		baseURL:    baseURL,
	}

	form := url.Values{}
	form.Set("x_auth_username", creds.Username)
	form.Set("x_auth_password", creds.Password)
	form.Set("x_auth_mode", "client_auth")

	body, err := bootstrap.postForm(ctx, accessTokenPath, form)
	if err != nil {
		return nil, err
	}

	// Response is URL-encoded: oauth_token=...&oauth_token_secret=...
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, ErrAccessToken
	}
	token := values.Get("oauth_token")
	secret := values.Get("oauth_token_secret")
	if token == "" || secret == "" {
		return nil, ErrAccessToken
	}

	return &Client{
		httpClient: signedHTTPClient(ctx, config, oauth1.NewToken(token, secret)),
		baseURL:    baseURL,
	}, nil
}

// NewClient creates a client around a prepared HTTP client. Used by tests
// to point an unsigned client at a local server.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

func signedHTTPClient(ctx context.Context, config *oauth1.Config, token *oauth1.Token) *http.Client {
	client := config.Client(ctx, token)
	client.Timeout = DefaultTimeout
	return client
}

// postForm issues a signed form-encoded POST and returns the response
// body. Any non-200 response becomes an *APIError carrying the body text.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body), URL: endpoint}
	}
	return body, nil
}
