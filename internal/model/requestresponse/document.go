package requestresponse

import (
	"presentation-web-server/internal/model"
	"time"
)

// DocumentResponse : описывает документ для JSON-ответа
type DocumentResponse struct {
	UUID         string `json:"id" example:"qwdj1q4o34u34ih759ou1"`
	SessionUUID  string `json:"session_uuid"`
	Title        string `json:"name" example:"slide1.png"`
	DocType      string `json:"doc_type" example:"image"`
	PublicURL    string `json:"public_url"`
	MimeType     string `json:"mime" example:"image/png"`
	SizeBytes    int64  `json:"size_bytes" example:"10240"`
	DisplayOrder int    `json:"display_order" example:"0"`
	CreatedAt    string `json:"created" example:"2025-08-23T12:34:56Z"`
}

// DocumentResponseFromModel : конвертирует model.Document в DocumentResponse
func DocumentResponseFromModel(doc *model.Document) DocumentResponse {
	return DocumentResponse{
		UUID:         doc.UUID,
		SessionUUID:  doc.SessionUUID,
		Title:        doc.Title,
		DocType:      doc.DocType,
		PublicURL:    doc.PublicURL,
		MimeType:     doc.MimeType,
		SizeBytes:    doc.SizeBytes,
		DisplayOrder: doc.DisplayOrder,
		CreatedAt:    doc.CreatedAt.Format(time.RFC3339),
	}
}

// ListDocumentsResponse : ответ API со списком документов сессии
type ListDocumentsResponse struct {
	Data struct {
		Docs []DocumentResponse `json:"docs"`
	} `json:"data"`
	Count int `json:"count" example:"3"`
}

// ReorderDocumentsRequest : новый порядок документов сессии
type ReorderDocumentsRequest struct {
	DocumentUUIDs []string `json:"document_uuids"`
}

// UploadDocumentResponse : ответ при загрузке документа
type UploadDocumentResponse struct {
	Data DocumentResponse `json:"data"`
}
