package instapaper

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/PeterTheobald/instapaper-gdocs/internal/core/domain"
)

const (
	foldersListPath = "/api/1.1/folders/list"
	foldersAddPath  = "/api/1/folders/add"
)

// folderEntry mirrors one element of a folders/list response. Folder
// identifiers arrive as JSON numbers.
type folderEntry struct {
	FolderID json.Number `json:"folder_id"`
	Title    string      `json:"title"`
	Type     string      `json:"type"`
}

// ListFolders returns all folders the authenticated account owns, in
// listing order.
func (c *Client) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	body, err := c.postForm(ctx, foldersListPath, url.Values{})
	if err != nil {
		return nil, err
	}

	var entries []folderEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}

	folders := make([]domain.Folder, 0, len(entries))
	for _, e := range entries {
		folders = append(folders, domain.Folder{
			ID:    e.FolderID.String(),
			Title: e.Title,
			Type:  e.Type,
		})
	}
	return folders, nil
}

// ResolveFolderID returns the identifier of the first folder (in listing
// order) whose title exactly equals name. Duplicate names beyond the first
// are ignored. Returns domain.ErrFolderNotFound when nothing matches.
func (c *Client) ResolveFolderID(ctx context.Context, name string) (string, error) {
	folders, err := c.ListFolders(ctx)
	if err != nil {
		return "", err
	}
	for _, f := range folders {
		if f.Type == domain.FolderTypeFolder && f.Title == name {
			return f.ID, nil
		}
	}
	return "", domain.ErrFolderNotFound
}

// CreateFolder creates a folder and returns its identifier from the
// response.
func (c *Client) CreateFolder(ctx context.Context, name string) (string, error) {
	form := url.Values{}
	form.Set("title", name)

	body, err := c.postForm(ctx, foldersAddPath, form)
	if err != nil {
		return "", err
	}

	// The response is a one-element array holding the new folder.
	var entries []folderEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", &APIError{StatusCode: 200, Body: string(body), URL: c.baseURL + foldersAddPath}
	}
	return entries[0].FolderID.String(), nil
}
