package repository

import (
	"context"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type ChatRepository struct {
	*config.Database
}

func NewChatRepository(database *config.Database) *ChatRepository {
	return &ChatRepository{database}
}

// Insert : добавляет сообщение в журнал (append-only, правок по одному сообщению нет)
func (r *ChatRepository) Insert(ctx context.Context, exec sqlx.ExtContext, message *model.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (uuid, session_uuid, sender_uuid, sender_name, msg_type, content, file_url, file_name, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := exec.ExecContext(ctx, query,
		message.UUID,
		message.SessionUUID,
		message.SenderUUID,
		message.SenderName,
		message.MsgType,
		message.Content,
		message.FileURL,
		message.FileName,
		message.MimeType)
	if err != nil {
		return util.LogError("[ChatRepo] не удалось сохранить сообщение", err)
	}
	return nil
}

// ListBySession : история сообщений сессии по возрастанию времени
func (r *ChatRepository) ListBySession(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) ([]model.ChatMessage, error) {
	query := `
		SELECT uuid, session_uuid, sender_uuid, sender_name, msg_type, content, file_url, file_name, mime_type, created_at
		FROM chat_messages
		WHERE session_uuid = $1
		ORDER BY created_at ASC
	`
	messages := []model.ChatMessage{}
	err := sqlx.SelectContext(ctx, exec, &messages, query, sessionUUID)
	if err != nil {
		return nil, util.LogError("[ChatRepo] не удалось получить историю сообщений", err)
	}
	return messages, nil
}

// DeleteBySession : массовое удаление всей истории сессии
func (r *ChatRepository) DeleteBySession(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) error {
	_, err := exec.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_uuid = $1`, sessionUUID)
	if err != nil {
		return util.LogError("[ChatRepo] не удалось удалить историю сообщений", err)
	}
	return nil
}
