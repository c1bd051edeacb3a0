package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/domain"
	"github.com/PeterTheobald/instapaper-gdocs/internal/core/ports/driven"
	"github.com/PeterTheobald/instapaper-gdocs/internal/core/ports/driving"
	"github.com/PeterTheobald/instapaper-gdocs/internal/logger"
)

const (
	// DefaultMetadataWorkers bounds the parallel metadata fetches. The
	// fetches are independent and read-only; adds stay strictly
	// sequential.
	DefaultMetadataWorkers = 4

	// DefaultPollInterval and DefaultPollTimeout bound the wait for an
	// asynchronous bookmark add to become visible.
	DefaultPollInterval = 500 * time.Millisecond
	DefaultPollTimeout  = 15 * time.Second
)

// Ensure Reorganizer implements the interface.
var _ driving.Reorganizer = (*Reorganizer)(nil)

// Reorganizer republishes a folder's Google Doc bookmarks into a new
// folder ordered by document modification time.
type Reorganizer struct {
	source driven.BookmarkSource
	docs   driven.DocumentFetcher

	// Workers is the metadata fetch parallelism.
	Workers int

	// PollInterval and PollTimeout control the post-add visibility poll.
	PollInterval time.Duration
	PollTimeout  time.Duration
}

// NewReorganizer creates a Reorganizer with default tuning.
func NewReorganizer(source driven.BookmarkSource, docs driven.DocumentFetcher) *Reorganizer {
	return &Reorganizer{
		source:       source,
		docs:         docs,
		Workers:      DefaultMetadataWorkers,
		PollInterval: DefaultPollInterval,
		PollTimeout:  DefaultPollTimeout,
	}
}

// Reorganize scans sourceFolder for Google Doc bookmarks, aggregates each
// with its document metadata, and republishes them into targetFolder in
// ascending modified-time order. An empty targetFolder synthesizes
// "{source}-{4 hex chars}" to avoid collisions.
func (s *Reorganizer) Reorganize(ctx context.Context, sourceFolder, targetFolder string) (*driving.ReorganizeResult, error) {
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

	logger.Section("Fetch document metadata")
	docs, dropped := s.fetchMetadata(ctx, bookmarks)

	// RFC 3339 timestamps compare lexicographically in chronological
	// order; the stable sort keeps encounter order for ties.
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Meta.ModifiedTime < docs[j].Meta.ModifiedTime
	})

	logger.Section("Republish")
	if targetFolder == "" {
		targetFolder = uniqueFolderName(sourceFolder)
		logger.Info("no target name given, using %q", targetFolder)
	}

	targetID, err := s.source.ResolveFolderID(ctx, targetFolder)
	switch {
	case errors.Is(err, domain.ErrFolderNotFound):
		targetID, err = s.source.CreateFolder(ctx, targetFolder)
		if err != nil {
			return nil, fmt.Errorf("create folder %q: %w", targetFolder, err)
		}
	case err != nil:
		return nil, fmt.Errorf("resolve folder %q: %w", targetFolder, err)
	default:
		logger.Warn("folder %q already exists; republishing will add duplicate bookmarks", targetFolder)
	}

	result := &driving.ReorganizeResult{
		TargetFolder:   targetFolder,
		TargetFolderID: targetID,
		Dropped:        dropped,
	}

	for _, doc := range docs {
		logger.Info("adding %s - %s", doc.ModifiedDate(), doc.Meta.Title)
		if err := s.source.AddBookmark(ctx, targetID, doc.URL, doc.EnrichedTitle(), doc.EnrichedDescription()); err != nil {
			return result, fmt.Errorf("add bookmark %q: %w", doc.Meta.Title, err)
		}
		// Additions are applied asynchronously and can land out of call
		// order; confirm each one is visible before issuing the next so
		// the final order matches the sort.
		if err := s.waitVisible(ctx, targetID, doc.URL); err != nil {
			return result, err
		}
		result.Added = append(result.Added, doc)
	}

	return result, nil
}

// fetchMetadata aggregates each bookmark with its document metadata using
// a bounded worker pool. Results keep the bookmarks' encounter order;
// bookmarks whose identifier cannot be extracted or whose metadata fetch
// fails are dropped with a logged diagnostic.
func (s *Reorganizer) fetchMetadata(ctx context.Context, bookmarks []domain.Bookmark) ([]domain.AggregatedDoc, int) {
	type outcome struct {
		doc domain.AggregatedDoc
		err error
	}
	outcomes := make([]outcome, len(bookmarks))

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(bookmarks) {
		workers = len(bookmarks)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				doc, err := s.fetchOne(ctx, bookmarks[i])
				outcomes[i] = outcome{doc: doc, err: err}
			}
		}()
	}
	for i := range bookmarks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var docs []domain.AggregatedDoc
	dropped := 0
	for i, o := range outcomes {
		if o.err != nil {
			dropped++
			logger.Warn("skipping %q: %v", bookmarks[i].Title, o.err)
			continue
		}
		logger.Info("got %s - %s %s", bookmarks[i].Title, o.doc.Meta.Owner, o.doc.ModifiedDate())
		docs = append(docs, o.doc)
	}
	return docs, dropped
}

func (s *Reorganizer) fetchOne(ctx context.Context, bm domain.Bookmark) (domain.AggregatedDoc, error) {
	docID, err := domain.ExtractDocID(bm.URL)
	if err != nil {
		return domain.AggregatedDoc{}, err
	}
	meta, err := s.docs.GetMetadata(ctx, docID)
	if err != nil {
		return domain.AggregatedDoc{}, fmt.Errorf("metadata fetch failed: %w", err)
	}
	return domain.AggregatedDoc{URL: bm.URL, Meta: meta}, nil
}

// waitVisible polls the destination folder until the just-added bookmark
// shows up. Timing out is a warning, not a failure: the pipeline carries
// on and the final order becomes best-effort for that entry.
func (s *Reorganizer) waitVisible(ctx context.Context, folderID, url string) error {
	deadline := time.Now().Add(s.PollTimeout)
	for {
		found, err := s.source.BookmarkExists(ctx, folderID, url)
		if err != nil {
			logger.Debug("visibility check failed: %v", err)
		} else if found {
			return nil
		}

		if time.Now().After(deadline) {
			logger.Warn("bookmark %s not visible after %s; continuing", url, s.PollTimeout)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.PollInterval):
		}
	}
}

// uniqueFolderName appends a short random suffix to avoid colliding with
// an existing folder of the same name.
func uniqueFolderName(base string) string {
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:4])
}
