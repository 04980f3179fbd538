package model

import "time"

// FileInfo is a listing entry. The file on disk is its own record; nothing here is
// persisted separately.
type FileInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoredFile describes a file accepted by an upload.
type StoredFile struct {
	Name         string       `json:"name"`
	OriginalName string       `json:"originalName"`
	Section      Category     `json:"section"`
	Type         DocumentType `json:"type"`
	Size         int64        `json:"size"`
	MimeType     string       `json:"mimeType"`
	Path         string       `json:"path"`
	CreatedAt    time.Time    `json:"createdAt"`
}
