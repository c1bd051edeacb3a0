package instapaper

import (
	"errors"
	"fmt"
)

// ErrAccessToken indicates the xAuth token exchange was rejected.
var ErrAccessToken = errors.New("instapaper: access token request rejected")

// APIError represents a non-success Instapaper API response. It carries
// the raw response body; Instapaper does not return structured error
// codes this layer could distinguish.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("instapaper: API error %d: %s (URL: %s)", e.StatusCode, e.Body, e.URL)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return errors.Is(err, ErrAccessToken)
}
