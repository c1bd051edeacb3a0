package services

import (
	"bytes"
	"context"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/domain"
	"github.com/PeterTheobald/instapaper-gdocs/internal/logger"
)

func docURL(id string) string {
	return "https://docs.google.com/document/d/" + id + "/edit"
}

// newReorganizeFixture sets up a source folder "Reading" with the given
// bookmarks and a fetcher serving their metadata.
func newReorganizeFixture(bookmarks []domain.Bookmark) (*fakeBookmarkSource, *fakeFetcher, *Reorganizer) {
	source := newFakeBookmarkSource()
	source.addFolder("1", "Reading")
	source.listings["1"] = bookmarks

	fetcher := newFakeFetcher()

	svc := NewReorganizer(source, fetcher)
	svc.PollInterval = time.Millisecond
	svc.PollTimeout = 100 * time.Millisecond
	return source, fetcher, svc
}

func TestReorganizer_SortsByModifiedTime(t *testing.T) {
	// Listing order: newest first, then the two tied-date entries.
	_, fetcher, svc := newReorganizeFixture([]domain.Bookmark{
		{URL: docURL("a"), Title: "Newest", FolderID: "1"},
		{URL: docURL("b"), Title: "Oldest", FolderID: "1"},
		{URL: docURL("c"), Title: "Middle", FolderID: "1"},
	})
	fetcher.meta["a"] = domain.DocumentMetadata{Title: "Newest", Owner: "Ada", ModifiedTime: "2023-05-01"}
	fetcher.meta["b"] = domain.DocumentMetadata{Title: "Oldest", Owner: "Ada", ModifiedTime: "2023-01-10"}
	fetcher.meta["c"] = domain.DocumentMetadata{Title: "Middle", Owner: "Ada", ModifiedTime: "2023-01-10T00:00:01"}

	result, err := svc.Reorganize(context.Background(), "Reading", "Sorted")

	require.NoError(t, err)
	require.Len(t, result.Added, 3)
	assert.Equal(t, "Oldest", result.Added[0].Meta.Title)
	assert.Equal(t, "Middle", result.Added[1].Meta.Title)
	assert.Equal(t, "Newest", result.Added[2].Meta.Title)
}

func TestReorganizer_StableSortKeepsEncounterOrderOnTies(t *testing.T) {
	source, fetcher, svc := newReorganizeFixture([]domain.Bookmark{
		{URL: docURL("first"), Title: "First", FolderID: "1"},
		{URL: docURL("second"), Title: "Second", FolderID: "1"},
		{URL: docURL("third"), Title: "Third", FolderID: "1"},
	})
	for _, id := range []string{"first", "second", "third"} {
		fetcher.meta[id] = domain.DocumentMetadata{Title: id, Owner: "Ada", ModifiedTime: "2023-03-03"}
	}

	result, err := svc.Reorganize(context.Background(), "Reading", "Sorted")

	require.NoError(t, err)
	require.Len(t, result.Added, 3)
	assert.Equal(t, docURL("first"), source.added[0].URL)
	assert.Equal(t, docURL("second"), source.added[1].URL)
	assert.Equal(t, docURL("third"), source.added[2].URL)
}

func TestReorganizer_DropsFailedMetadataFetches(t *testing.T) {
	defer logger.SetOutput(os.Stderr)
	var logBuf bytes.Buffer
	logger.SetOutput(&logBuf)

	_, fetcher, svc := newReorganizeFixture([]domain.Bookmark{
		{URL: docURL("ok1"), Title: "Doc One", FolderID: "1"},
		{URL: docURL("broken"), Title: "Doc Two", FolderID: "1"},
		{URL: docURL("ok2"), Title: "Doc Three", FolderID: "1"},
	})
	fetcher.meta["ok1"] = domain.DocumentMetadata{Title: "Doc One", Owner: "Ada", ModifiedTime: "2023-02-01"}
	fetcher.metaErrs["broken"] = assert.AnError
	fetcher.meta["ok2"] = domain.DocumentMetadata{Title: "Doc Three", Owner: "Ada", ModifiedTime: "2023-01-01"}

	result, err := svc.Reorganize(context.Background(), "Reading", "Sorted")

	require.NoError(t, err)
	require.Len(t, result.Added, 2)
	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, "Doc Three", result.Added[0].Meta.Title)
	assert.Equal(t, "Doc One", result.Added[1].Meta.Title)
	assert.Contains(t, logBuf.String(), "Doc Two")
}

func TestReorganizer_DropsBookmarksWithoutDocID(t *testing.T) {
	_, fetcher, svc := newReorganizeFixture([]domain.Bookmark{
		{URL: "https://docs.google.com/document/u/0/", Title: "No ID", FolderID: "1"},
		{URL: docURL("ok"), Title: "Good", FolderID: "1"},
	})
	fetcher.meta["ok"] = domain.DocumentMetadata{Title: "Good", Owner: "Ada", ModifiedTime: "2023-02-01"}

	result, err := svc.Reorganize(context.Background(), "Reading", "Sorted")

	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Equal(t, 1, result.Dropped)
}

func TestReorganizer_SynthesizesTargetName(t *testing.T) {
	source, fetcher, svc := newReorganizeFixture([]domain.Bookmark{
		{URL: docURL("a"), Title: "Doc", FolderID: "1"},
	})
	fetcher.meta["a"] = domain.DocumentMetadata{Title: "Doc", Owner: "Ada", ModifiedTime: "2023-02-01"}

	result, err := svc.Reorganize(context.Background(), "Reading", "")

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^Reading-[0-9a-f]{4}$`), result.TargetFolder)

	// The synthesized folder was created and received the bookmark.
	id, err := source.ResolveFolderID(context.Background(), result.TargetFolder)
	require.NoError(t, err)
	assert.Equal(t, id, result.TargetFolderID)
	require.Len(t, source.added, 1)
	assert.Equal(t, id, source.added[0].FolderID)
}

func TestReorganizer_ExistingTargetFolderIsReused(t *testing.T) {
	defer logger.SetOutput(os.Stderr)
	var logBuf bytes.Buffer
	logger.SetOutput(&logBuf)

	source, fetcher, svc := newReorganizeFixture([]domain.Bookmark{
		{URL: docURL("a"), Title: "Doc", FolderID: "1"},
	})
	source.addFolder("9", "Sorted")
	fetcher.meta["a"] = domain.DocumentMetadata{Title: "Doc", Owner: "Ada", ModifiedTime: "2023-02-01"}

	result, err := svc.Reorganize(context.Background(), "Reading", "Sorted")

	require.NoError(t, err)
	assert.Equal(t, "9", result.TargetFolderID)
	assert.Contains(t, logBuf.String(), "duplicate")
}

func TestReorganizer_EnrichedTitleAndDescription(t *testing.T) {
	source, fetcher, svc := newReorganizeFixture([]domain.Bookmark{
		{URL: docURL("a"), Title: "Doc", FolderID: "1"},
	})
	fetcher.meta["a"] = domain.DocumentMetadata{
		Title:        "Quarterly Plan",
		Owner:        "Ada Lovelace",
		ModifiedTime: "2023-05-01T14:30:00.000Z",
	}

	_, err := svc.Reorganize(context.Background(), "Reading", "Sorted")

	require.NoError(t, err)
	require.Len(t, source.added, 1)
	assert.Equal(t, "Quarterly Plan - Ada Lovelace - 2023-05-01", source.added[0].Title)
	assert.Equal(t, "Quarterly Plan - Ada Lovelace<br>\n2023-05-01<br>\n"+
		`<a href="`+docURL("a")+`">`+docURL("a")+`</a><br>`, source.added[0].Description)
}

func TestReorganizer_WaitsForVisibilityBetweenAdds(t *testing.T) {
	source, fetcher, svc := newReorganizeFixture([]domain.Bookmark{
		{URL: docURL("a"), Title: "A", FolderID: "1"},
		{URL: docURL("b"), Title: "B", FolderID: "1"},
	})
	// Each add becomes visible only on the third existence check.
	source.visibilityDelay = 3
	fetcher.meta["a"] = domain.DocumentMetadata{Title: "A", Owner: "Ada", ModifiedTime: "2023-01-01"}
	fetcher.meta["b"] = domain.DocumentMetadata{Title: "B", Owner: "Ada", ModifiedTime: "2023-02-01"}

	result, err := svc.Reorganize(context.Background(), "Reading", "Sorted")

	require.NoError(t, err)
	assert.Len(t, result.Added, 2)
	assert.GreaterOrEqual(t, source.existsCalls, 6, "each add should be polled until visible")
}

func TestReorganizer_VisibilityTimeoutIsNonFatal(t *testing.T) {
	defer logger.SetOutput(os.Stderr)
	var logBuf bytes.Buffer
	logger.SetOutput(&logBuf)

	source, fetcher, svc := newReorganizeFixture([]domain.Bookmark{
		{URL: docURL("a"), Title: "A", FolderID: "1"},
	})
	// Never becomes visible within the poll budget.
	source.visibilityDelay = 1 << 30
	svc.PollTimeout = 5 * time.Millisecond
	fetcher.meta["a"] = domain.DocumentMetadata{Title: "A", Owner: "Ada", ModifiedTime: "2023-01-01"}

	result, err := svc.Reorganize(context.Background(), "Reading", "Sorted")

	require.NoError(t, err)
	assert.Len(t, result.Added, 1)
	assert.Contains(t, logBuf.String(), "not visible")
}

func TestReorganizer_SourceFolderMissingIsFatal(t *testing.T) {
	_, _, svc := newReorganizeFixture(nil)

	_, err := svc.Reorganize(context.Background(), "Nope", "Sorted")

	require.ErrorIs(t, err, domain.ErrFolderNotFound)
}

func TestReorganizer_ParallelFetchKeepsEncounterOrder(t *testing.T) {
	var bookmarks []domain.Bookmark
	fetcherMeta := map[string]domain.DocumentMetadata{}
	for _, id := range []string{"d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8"} {
		bookmarks = append(bookmarks, domain.Bookmark{URL: docURL(id), Title: id, FolderID: "1"})
		// Identical timestamps: final order must equal encounter order.
		fetcherMeta[id] = domain.DocumentMetadata{Title: id, Owner: "Ada", ModifiedTime: "2023-04-04"}
	}
	source, fetcher, svc := newReorganizeFixture(bookmarks)
	fetcher.meta = fetcherMeta

	result, err := svc.Reorganize(context.Background(), "Reading", "Sorted")

	require.NoError(t, err)
	require.Len(t, result.Added, 8)
	for i, id := range []string{"d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8"} {
		assert.Equal(t, docURL(id), source.added[i].URL)
	}
	assert.Equal(t, 8, fetcher.metaCalls)
}
