package ports

import (
	"context"

	"presentation-web-server/internal/model"

	"github.com/jmoiron/sqlx"
)

// DocumentRepository : SQL слой документов
type DocumentRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, document *model.Document) error
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (*model.Document, error)
	BelongsToSession(ctx context.Context, exec sqlx.ExtContext, documentUUID, sessionUUID string) (bool, error)
	ListBySession(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) ([]model.Document, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, documentUUID string) (string, error)
	UpdateOrder(ctx context.Context, exec sqlx.ExtContext, documentUUID string, order int) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type DocumentService interface {
	UploadDocument(ctx context.Context, sessionUUID, filename, mimeType string, data []byte) (*model.Document, error)
	GetSessionDocuments(ctx context.Context, sessionUUID string) ([]model.Document, error)
	DeleteDocument(ctx context.Context, documentUUID string) error
	ReorderDocuments(ctx context.Context, sessionUUID string, documentUUIDs []string) error
	GetDownloadURL(ctx context.Context, documentUUID string) (string, error)
}
