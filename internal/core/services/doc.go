// Package services contains the reconciliation pipeline: matching
// bookmarks to Google Doc identifiers, fetching document metadata, and
// driving either the download path or the republish path.
package services
