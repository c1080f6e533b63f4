package domain

import "time"

// Blob is a stored object served back by its public URL.
type Blob struct {
	Key         string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// Upload is a decoded file ready to be stored.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadResult describes a stored upload.
type UploadResult struct {
	URL      string
	Filename string
}
