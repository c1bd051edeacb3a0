package driving

import (
	"context"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/domain"
)

// ReorganizeResult summarises one reorganize run.
type ReorganizeResult struct {
	// TargetFolder is the destination folder name, whether supplied or
	// synthesized.
	TargetFolder string

	// TargetFolderID is the destination folder identifier.
	TargetFolderID string

	// Added holds the documents republished into the destination folder,
	// in the order they were written (ascending modified time).
	Added []domain.AggregatedDoc

	// Dropped counts bookmarks skipped because their metadata fetch failed.
	Dropped int
}

// ProgressFunc reports export progress for one document. total is -1
// when the size is not known in advance.
type ProgressFunc func(title string, written, total int64)

// DownloadFailure records one document that could not be exported.
type DownloadFailure struct {
	Title string
	Err   error
}

// DownloadResult summarises one download run.
type DownloadResult struct {
	// Saved holds the paths of successfully written files, in bookmark
	// listing order.
	Saved []string

	// Failed holds per-document export failures. The run continues past
	// them.
	Failed []DownloadFailure
}

// Reorganizer republishes a folder's Google Doc bookmarks into a new
// folder ordered by document modification time.
type Reorganizer interface {
	Reorganize(ctx context.Context, sourceFolder, targetFolder string) (*ReorganizeResult, error)
}

// Downloader exports every Google Doc linked from a folder to local files.
type Downloader interface {
	Download(ctx context.Context, sourceFolder, saveDir string) (*DownloadResult, error)
}
