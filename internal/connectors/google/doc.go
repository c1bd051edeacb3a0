// Package google provides shared infrastructure for the Google Drive
// connector:
//
//   - Drive service factory built on an oauth2.TokenSource
//   - Credential loading: OAuth2 client config from disk plus an on-disk
//     authorized-token cache, created on first run
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Drive API quotas
//
// # OAuth2 Scope
//
// The connector only reads metadata and exports documents, so it requests
// the single restricted scope:
//   - https://www.googleapis.com/auth/drive.readonly
//
// For user-created internal apps, restricted scopes don't require
// verification.
package google
