package model

import "time"

// Document is an uploaded file. The content lives in object storage under StoragePath.
type Document struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentReference is the input to render selection. It is built per call and never stored.
// An empty DeclaredType means no hint was given.
type DocumentReference struct {
	Locator      string `json:"locator"`
	DeclaredType string `json:"declared_type,omitempty"`
}
