package instapaper

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/domain"
	"github.com/PeterTheobald/instapaper-gdocs/internal/logger"
)

const (
	bookmarksListPath = "/api/1/bookmarks/list"
	bookmarksAddPath  = "/api/1/bookmarks/add"

	// MaxBookmarksPerPage is the largest page the bookmarks/list endpoint
	// accepts. A single page is fetched; a full page is surfaced as a
	// truncation warning.
	MaxBookmarksPerPage = 500

	entryTypeBookmark = "bookmark"
)

// bookmarkEntry mirrors one element of a bookmarks/list response. The
// array mixes bookmark entries with meta and user entries, distinguished
// by type.
type bookmarkEntry struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// listBookmarkEntries fetches one page of bookmark entries for a folder,
// already filtered to type == "bookmark".
func (c *Client) listBookmarkEntries(ctx context.Context, folderID string) ([]bookmarkEntry, error) {
	form := url.Values{}
	form.Set("folder_id", folderID)
	form.Set("limit", strconv.Itoa(MaxBookmarksPerPage))

	body, err := c.postForm(ctx, bookmarksListPath, form)
	if err != nil {
		return nil, err
	}

	var entries []bookmarkEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}

	bookmarks := entries[:0]
	for _, e := range entries {
		if e.Type == entryTypeBookmark {
			bookmarks = append(bookmarks, e)
		}
	}
	return bookmarks, nil
}

// ListGoogleDocBookmarks returns the folder's bookmarks whose URLs point
// at Google Docs, in listing order. A full page means the folder may hold
// more bookmarks than one request can return; that is warned about rather
// than silently dropped.
func (c *Client) ListGoogleDocBookmarks(ctx context.Context, folderID string) ([]domain.Bookmark, error) {
	entries, err := c.listBookmarkEntries(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if len(entries) >= MaxBookmarksPerPage {
		logger.Warn("folder %s returned a full page of %d bookmarks; entries beyond the page size are not listed",
			folderID, MaxBookmarksPerPage)
	}

	var bookmarks []domain.Bookmark
	for _, e := range entries {
		if !domain.IsGoogleDocURL(e.URL) {
			continue
		}
		bookmarks = append(bookmarks, domain.Bookmark{
			URL:      e.URL,
			Title:    e.Title,
			FolderID: folderID,
		})
	}
	return bookmarks, nil
}

// AddBookmark saves a bookmark into a folder. Instapaper applies the add
// asynchronously; use BookmarkExists to confirm it landed.
func (c *Client) AddBookmark(ctx context.Context, folderID, bookmarkURL, title, description string) error {
	form := url.Values{}
	form.Set("url", bookmarkURL)
	form.Set("title", title)
	form.Set("description", description)
	form.Set("content", description)
	form.Set("folder_id", folderID)

	_, err := c.postForm(ctx, bookmarksAddPath, form)
	return err
}

// BookmarkExists reports whether a bookmark with the given URL is visible
// in the folder.
func (c *Client) BookmarkExists(ctx context.Context, folderID, bookmarkURL string) (bool, error) {
	entries, err := c.listBookmarkEntries(ctx, folderID)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.URL == bookmarkURL {
			return true, nil
		}
	}
	return false, nil
}
