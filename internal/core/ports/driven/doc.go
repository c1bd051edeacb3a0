// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// The pipeline services depend on these interfaces; the connector packages
// implement them.
//
//   - BookmarkSource: the bookmark-manager API (Instapaper)
//   - DocumentFetcher: the document-storage API (Google Drive)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter or connector package
package driven
