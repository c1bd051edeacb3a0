package driven

import (
	"context"
	"io"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/domain"
)

// ExportProgressFunc reports export progress. written is the number of
// bytes copied so far; total is the expected size, or -1 when the service
// does not announce one.
type ExportProgressFunc func(written, total int64)

// DocumentFetcher wraps the document-storage API.
type DocumentFetcher interface {
	// GetMetadata returns title, owner, and last-modified time for a
	// document. Absent owner or modified time default to
	// domain.UnknownField. Errors are per-document: callers drop the
	// document and continue.
	GetMetadata(ctx context.Context, docID string) (domain.DocumentMetadata, error)

	// Export streams the document converted to the Word-processing
	// interchange format into w, reporting progress through the optional
	// callback.
	Export(ctx context.Context, docID string, w io.Writer, progress ExportProgressFunc) error
}
