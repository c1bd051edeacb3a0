package domain

import "strings"

// googleDocURLMarker identifies bookmark URLs that point at a Google Doc.
const googleDocURLMarker = "docs.google.com/document"

// IsGoogleDocURL reports whether a bookmark URL points at a Google Doc.
// This is the folder-filter rule: any URL containing the marker is assumed
// well-formed enough for ExtractDocID.
func IsGoogleDocURL(url string) bool {
	return strings.Contains(url, googleDocURLMarker)
}

// ExtractDocID returns the document identifier embedded in a Google Docs
// sharing URL: the path segment between the first "/d/" and the following
// "/" (or the end of the string). Returns ErrNotGoogleDocURL when the URL
// has no "/d/" segment.
func ExtractDocID(url string) (string, error) {
	_, rest, found := strings.Cut(url, "/d/")
	if !found {
		return "", ErrNotGoogleDocURL
	}
	id, _, _ := strings.Cut(rest, "/")
	return id, nil
}
