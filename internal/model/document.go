package model

import "time"

const (
	DocumentTypePDF   = "pdf"
	DocumentTypeImage = "image"
	DocumentTypeVideo = "video"
)

type Document struct {
	UUID         string    `db:"uuid" json:"uuid"`
	SessionUUID  string    `db:"session_uuid" json:"session_uuid"`
	Title        string    `db:"title" json:"title"`
	DocType      string    `db:"doc_type" json:"doc_type"`
	StoragePath  string    `db:"storage_path" json:"-"`
	PublicURL    string    `db:"public_url" json:"public_url"`
	MimeType     string    `db:"mime_type" json:"mime_type"`
	SizeBytes    int64     `db:"size_bytes" json:"size_bytes"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// DocTypeFromMime : определяет тип документа по MIME
func DocTypeFromMime(mimeType string) string {
	switch {
	case mimeType == "application/pdf":
		return DocumentTypePDF
	case len(mimeType) >= 6 && mimeType[:6] == "video/":
		return DocumentTypeVideo
	default:
		return DocumentTypeImage
	}
}
