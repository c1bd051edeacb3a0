// Package instapaper implements the BookmarkSource port against the
// Instapaper Full API.
//
// Every request is a form-encoded POST signed with OAuth1. The access
// token is obtained once per run through Instapaper's xAuth variant
// (username/password exchanged directly for a token, no browser step).
//
// The API has an awkward contract the rest of the pipeline has to cope
// with: bookmark additions are applied asynchronously and may become
// visible out of call order, and bookmark listings are capped at 500
// entries per request.
package instapaper
