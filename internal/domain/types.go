package domain

import "time"

// Photo is the metadata record for one stored image.
type Photo struct {
	ID        string
	Filename  string
	URL       string
	MimeType  string
	Size      int64
	CreatedAt time.Time
}

// MusicLink is the single stored background-music URL.
type MusicLink struct {
	Link      string
	UpdatedAt time.Time
}
