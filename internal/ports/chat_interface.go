package ports

import (
	"context"

	"presentation-web-server/internal/model"

	"github.com/jmoiron/sqlx"
)

// ChatRepository : журнал сообщений (append-only, bulk delete по сессии)
type ChatRepository interface {
	Insert(ctx context.Context, exec sqlx.ExtContext, message *model.ChatMessage) error
	ListBySession(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) ([]model.ChatMessage, error)
	DeleteBySession(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) error
}

type ChatService interface {
	SendMessage(ctx context.Context, message *model.ChatMessage) error
	GetMessages(ctx context.Context, sessionUUID string) ([]model.ChatMessage, error)
	ClearMessages(ctx context.Context, sessionUUID string) error
	UploadAttachment(ctx context.Context, sessionUUID, filename, mimeType string, data []byte) (string, error)
}
