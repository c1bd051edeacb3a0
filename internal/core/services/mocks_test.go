package services

import (
	"context"
	"io"
	"strconv"
	"sync"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/domain"
	"github.com/PeterTheobald/instapaper-gdocs/internal/core/ports/driven"
)

// addedBookmark records one AddBookmark call.
type addedBookmark struct {
	FolderID    string
	URL         string
	Title       string
	Description string
}

// fakeBookmarkSource is an in-memory driven.BookmarkSource. Adds can be
// made asynchronous: with visibilityDelay > 0, a new bookmark only shows
// up in BookmarkExists after that many existence checks, imitating
// Instapaper's deferred writes.
type fakeBookmarkSource struct {
	mu       sync.Mutex
	folders  []domain.Folder
	listings map[string][]domain.Bookmark

	added           []addedBookmark
	pendingChecks   map[string]int
	visibilityDelay int
	existsCalls     int
	nextFolderID    int

	listErr   error
	createErr error
	addErr    error
}

func newFakeBookmarkSource() *fakeBookmarkSource {
	return &fakeBookmarkSource{
		listings:      make(map[string][]domain.Bookmark),
		pendingChecks: make(map[string]int),
		nextFolderID:  100,
	}
}

func (f *fakeBookmarkSource) addFolder(id, title string) {
	f.folders = append(f.folders, domain.Folder{ID: id, Title: title, Type: domain.FolderTypeFolder})
}

func (f *fakeBookmarkSource) ListFolders(_ context.Context) ([]domain.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Folder(nil), f.folders...), nil
}

func (f *fakeBookmarkSource) ResolveFolderID(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, folder := range f.folders {
		if folder.Type == domain.FolderTypeFolder && folder.Title == name {
			return folder.ID, nil
		}
	}
	return "", domain.ErrFolderNotFound
}

func (f *fakeBookmarkSource) ListGoogleDocBookmarks(_ context.Context, folderID string) ([]domain.Bookmark, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Bookmark
	for _, bm := range f.listings[folderID] {
		if domain.IsGoogleDocURL(bm.URL) {
			out = append(out, bm)
		}
	}
	return out, nil
}

func (f *fakeBookmarkSource) CreateFolder(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextFolderID++
	id := strconv.Itoa(f.nextFolderID)
	f.folders = append(f.folders, domain.Folder{ID: id, Title: name, Type: domain.FolderTypeFolder})
	return id, nil
}

func (f *fakeBookmarkSource) AddBookmark(_ context.Context, folderID, url, title, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, addedBookmark{FolderID: folderID, URL: url, Title: title, Description: description})
	if f.visibilityDelay > 0 {
		f.pendingChecks[folderID+"|"+url] = f.visibilityDelay
		return nil
	}
	f.listings[folderID] = append(f.listings[folderID], domain.Bookmark{URL: url, Title: title, FolderID: folderID})
	return nil
}

func (f *fakeBookmarkSource) BookmarkExists(_ context.Context, folderID, url string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.existsCalls++

	key := folderID + "|" + url
	if remaining, ok := f.pendingChecks[key]; ok {
		remaining--
		if remaining > 0 {
			f.pendingChecks[key] = remaining
			return false, nil
		}
		delete(f.pendingChecks, key)
		f.listings[folderID] = append(f.listings[folderID], domain.Bookmark{URL: url, FolderID: folderID})
	}

	for _, bm := range f.listings[folderID] {
		if bm.URL == url {
			return true, nil
		}
	}
	return false, nil
}

// fakeFetcher is an in-memory driven.DocumentFetcher.
type fakeFetcher struct {
	mu         sync.Mutex
	meta       map[string]domain.DocumentMetadata
	metaErrs   map[string]error
	exports    map[string][]byte
	exportErrs map[string]error
	metaCalls  int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		meta:       make(map[string]domain.DocumentMetadata),
		metaErrs:   make(map[string]error),
		exports:    make(map[string][]byte),
		exportErrs: make(map[string]error),
	}
}

func (f *fakeFetcher) GetMetadata(_ context.Context, docID string) (domain.DocumentMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metaCalls++
	if err, ok := f.metaErrs[docID]; ok {
		return domain.DocumentMetadata{}, err
	}
	meta, ok := f.meta[docID]
	if !ok {
		return domain.DocumentMetadata{}, domain.ErrNotGoogleDocURL
	}
	return meta, nil
}

func (f *fakeFetcher) Export(_ context.Context, docID string, w io.Writer, progress driven.ExportProgressFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.exportErrs[docID]; ok {
		return err
	}
	content := f.exports[docID]
	if _, err := w.Write(content); err != nil {
		return err
	}
	if progress != nil {
		progress(int64(len(content)), int64(len(content)))
	}
	return nil
}
