package domain

import "fmt"

// UnknownField is substituted for document metadata the Drive API did not
// return (missing owner display name or modified time).
const UnknownField = "Unknown"

// DocumentMetadata is the per-document information fetched from Drive.
// It is fetched fresh every run and never cached.
type DocumentMetadata struct {
	// Title is the document name in Drive.
	Title string

	// Owner is the display name of the first listed owner, or
	// UnknownField when Drive returns none.
	Owner string

	// ModifiedTime is the RFC 3339 last-modified timestamp as returned by
	// Drive, or UnknownField when absent. RFC 3339 strings compare
	// lexicographically in chronological order, which is what the
	// pipeline's sort relies on.
	ModifiedTime string
}

// AggregatedDoc joins a bookmark's URL with the metadata of the document
// it points to. It only lives for the duration of one pipeline run.
type AggregatedDoc struct {
	URL  string
	Meta DocumentMetadata
}

// EnrichedTitle is the title written to the destination bookmark:
// "{title} - {owner} - {date}".
func (d AggregatedDoc) EnrichedTitle() string {
	return fmt.Sprintf("%s - %s - %s", d.Meta.Title, d.Meta.Owner, d.ModifiedDate())
}

// EnrichedDescription is the HTML description written to the destination
// bookmark, linking back to the original document.
func (d AggregatedDoc) EnrichedDescription() string {
	return fmt.Sprintf("%s - %s<br>\n%s<br>\n<a href=%q>%s</a><br>",
		d.Meta.Title, d.Meta.Owner, d.ModifiedDate(), d.URL, d.URL)
}

// ModifiedDate is the date portion (first 10 characters) of the modified
// timestamp. Shorter values such as UnknownField pass through whole.
func (d AggregatedDoc) ModifiedDate() string {
	if len(d.Meta.ModifiedTime) > 10 {
		return d.Meta.ModifiedTime[:10]
	}
	return d.Meta.ModifiedTime
}
