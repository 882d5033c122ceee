package documents

import "time"

// Document is a PDF owned by a user.
type Document struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	FileName   string    `json:"fileName"`
	MimeType   string    `json:"mimeType"`
	SizeBytes  int64     `json:"sizeBytes"`
	StorageKey string    `json:"-"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}
