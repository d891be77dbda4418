package domain

import "time"

// Photo represents a portfolio image stored on the remote media host.
// StorageKey is the object key on the media host; URL is the public
// address clients render directly.
type Photo struct {
	ID           int64
	Title        string
	Description  string
	StorageKey   string
	URL          string
	OriginalName string
	CategoryID   *int64
	IsFeatured   bool
	OrderIndex   int
	UploadedAt   time.Time

	// Populated by the left join against categories; nil when the
	// photo has no category.
	CategoryName *string
	CategorySlug *string
}
