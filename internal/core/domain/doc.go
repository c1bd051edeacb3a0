// Package domain contains the core types shared across the pipeline:
// bookmarks and folders from the bookmark side, document metadata from
// the Drive side, and the aggregate that joins the two.
//
// Import rules:
//   - Can import: standard library only
//   - Cannot import: any adapter, connector, or service package
package domain
