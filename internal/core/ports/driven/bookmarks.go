package driven

import (
	"context"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/domain"
)

// BookmarkSource wraps the bookmark-manager API.
type BookmarkSource interface {
	// ListFolders returns all folders the authenticated account owns, in
	// the order the service lists them.
	ListFolders(ctx context.Context) ([]domain.Folder, error)

	// ResolveFolderID returns the identifier of the first folder whose
	// title exactly equals name. Returns domain.ErrFolderNotFound when no
	// folder matches; duplicate names beyond the first are ignored.
	ResolveFolderID(ctx context.Context, name string) (string, error)

	// ListGoogleDocBookmarks returns the folder's bookmarks filtered to
	// entries that link to Google Docs. At most one page (500 entries) is
	// fetched; a full page is reported as a truncation warning by the
	// implementation.
	ListGoogleDocBookmarks(ctx context.Context, folderID string) ([]domain.Bookmark, error)

	// CreateFolder creates a folder and returns its identifier.
	CreateFolder(ctx context.Context, name string) (string, error)

	// AddBookmark saves a bookmark into a folder. The service applies
	// additions asynchronously and may persist them out of call order;
	// callers needing total order must confirm visibility between calls.
	AddBookmark(ctx context.Context, folderID, url, title, description string) error

	// BookmarkExists reports whether a bookmark with the given URL is
	// visible in the folder. Used to confirm an asynchronous add landed
	// before the next one is issued.
	BookmarkExists(ctx context.Context, folderID, url string) (bool, error)
}
