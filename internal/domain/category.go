package domain

import "time"

// Category groups photos for the public portfolio. Categories are
// seeded at bootstrap and have no management endpoints.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
}
