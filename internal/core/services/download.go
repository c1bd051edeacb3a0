package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/domain"
	"github.com/PeterTheobald/instapaper-gdocs/internal/core/ports/driven"
	"github.com/PeterTheobald/instapaper-gdocs/internal/core/ports/driving"
	"github.com/PeterTheobald/instapaper-gdocs/internal/logger"
)

// Ensure Downloader implements the interface.
var _ driving.Downloader = (*Downloader)(nil)

// Downloader exports every Google Doc linked from a folder to local
// .docx files.
type Downloader struct {
	source driven.BookmarkSource
	docs   driven.DocumentFetcher

	// Progress, when set, receives export progress per document.
	Progress driving.ProgressFunc
}

// NewDownloader creates a Downloader.
func NewDownloader(source driven.BookmarkSource, docs driven.DocumentFetcher) *Downloader {
	return &Downloader{source: source, docs: docs}
}

// Download exports each Google Doc bookmarked in sourceFolder into
// saveDir, named "{bookmark title}.docx". Bookmarks are processed in
// listing order; a failure exporting one document is recorded and the
// run continues with the next.
func (s *Downloader) Download(ctx context.Context, sourceFolder, saveDir string) (*driving.DownloadResult, error) {
	logger.Section("Scan source folder")

	sourceID, err := s.source.ResolveFolderID(ctx, sourceFolder)
	if err != nil {
		return nil, fmt.Errorf("resolve folder %q: %w", sourceFolder, err)
	}

	bookmarks, err := s.source.ListGoogleDocBookmarks(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	logger.Info("found %d google doc bookmarks in %q", len(bookmarks), sourceFolder)

	if err := os.MkdirAll(saveDir, 0755); err != nil {
		return nil, fmt.Errorf("create destination %q: %w", saveDir, err)
	}

	logger.Section("Download")
	result := &driving.DownloadResult{}
	for _, bm := range bookmarks {
		path, err := s.downloadOne(ctx, bm.URL, bm.Title, saveDir)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			logger.Warn("export of %q failed: %v", bm.Title, err)
			result.Failed = append(result.Failed, driving.DownloadFailure{Title: bm.Title, Err: err})
			continue
		}
		logger.Info("saved %s", path)
		result.Saved = append(result.Saved, path)
	}
	return result, nil
}

func (s *Downloader) downloadOne(ctx context.Context, url, title, saveDir string) (string, error) {
	docID, err := domain.ExtractDocID(url)
	if err != nil {
		return "", err
	}

	path := filepath.Join(saveDir, outputFileName(title))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	var progress driven.ExportProgressFunc
	if s.Progress != nil {
		progress = func(written, total int64) { s.Progress(title, written, total) }
	}

	if err := s.docs.Export(ctx, docID, f, progress); err != nil {
		f.Close()
		// Don't leave a partial file behind.
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return path, nil
}

// outputFileName derives the local filename from the bookmark title.
// Path separators are replaced so the file stays inside the destination
// directory.
func outputFileName(title string) string {
	name := strings.ReplaceAll(title, string(os.PathSeparator), "-")
	return name + ".docx"
}
