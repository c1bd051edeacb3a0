package domain

// FolderTypeFolder is the entry type Instapaper uses for user folders in
// folder listings. Listings also contain non-folder entries (unread,
// archive) which folder resolution must skip.
const FolderTypeFolder = "folder"

// Folder is a folder in the bookmark manager's namespace.
type Folder struct {
	// ID is the opaque folder identifier assigned by the service.
	ID string

	// Title is the user-visible folder name.
	Title string

	// Type distinguishes real folders from pseudo-entries in listings.
	Type string
}

// Bookmark is a saved link inside a folder. The pipeline only reads and
// creates bookmarks, it never mutates one in place.
type Bookmark struct {
	URL      string
	Title    string
	FolderID string
}
