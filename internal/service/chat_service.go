package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/security"
	"presentation-web-server/internal/util"

	"github.com/google/uuid"
)

const maxMessageLength = 4000

// ChatService : чат сессии. Пишут и читают все, кто знает join-код
// (зрители анонимны), очищает историю только владелец сессии
type ChatService struct {
	chatRepository    ports.ChatRepository
	sessionRepository ports.SessionRepository
	storage           ports.S3Storage
	maxUploadBytes    int64
}

func NewChatService(
	chatRepository ports.ChatRepository,
	sessionRepository ports.SessionRepository,
	storage ports.S3Storage,
	uploadCfg *config.UploadConfig,
) *ChatService {
	return &ChatService{
		chatRepository:    chatRepository,
		sessionRepository: sessionRepository,
		storage:           storage,
		maxUploadBytes:    uploadCfg.MaxBytes,
	}
}

// SendMessage : добавляет сообщение в журнал сессии.
// Имя отправителя берётся из запроса как есть, аутентифицированному
// пользователю дополнительно проставляется sender_uuid
func (s *ChatService) SendMessage(ctx context.Context, message *model.ChatMessage) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ChatService] database connection не найден в context")
	}

	message.Content = strings.TrimSpace(message.Content)
	if message.Content == "" && message.FileURL == nil {
		return fmt.Errorf("[ChatService] пустое сообщение")
	}
	if len(message.Content) > maxMessageLength {
		return fmt.Errorf("[ChatService] сообщение превышает %d символов", maxMessageLength)
	}

	switch message.MsgType {
	case model.MessageTypeText, model.MessageTypeDocument, model.MessageTypeVideoLink:
	default:
		return fmt.Errorf("[ChatService] неизвестный тип сообщения: %s", message.MsgType)
	}

	if _, err := s.sessionRepository.FindByUUID(ctx, db, message.SessionUUID); err != nil {
		return fmt.Errorf("[ChatService] сессия не найдена")
	}

	if claims, err := security.GetClaimsFromContext(ctx); err == nil && claims != nil {
		message.SenderUUID = &claims.UserUUID
	}

	message.UUID = uuid.New().String()

	if err := s.chatRepository.Insert(ctx, db, message); err != nil {
		return util.LogError("[ChatService] не удалось сохранить сообщение", err)
	}

	return nil
}

// GetMessages : история сообщений сессии в хронологическом порядке
func (s *ChatService) GetMessages(ctx context.Context, sessionUUID string) ([]model.ChatMessage, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ChatService] database connection не найден в context")
	}

	if _, err := s.sessionRepository.FindByUUID(ctx, db, sessionUUID); err != nil {
		return nil, fmt.Errorf("[ChatService] сессия не найдена")
	}

	return s.chatRepository.ListBySession(ctx, db, sessionUUID)
}

// ClearMessages : очистка истории (только владелец сессии)
func (s *ChatService) ClearMessages(ctx context.Context, sessionUUID string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ChatService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[ChatService] пользователь не авторизован")
	}

	owner, err := s.sessionRepository.IsOwner(ctx, db, sessionUUID, claims.UserUUID)
	if err != nil {
		return util.LogError("[ChatService] ошибка проверки владения", err)
	}
	if !owner {
		return fmt.Errorf("[ChatService] доступ запрещён")
	}

	return s.chatRepository.DeleteBySession(ctx, db, sessionUUID)
}

// UploadAttachment : вложение чата кладётся в хранилище рядом с
// документами сессии, возвращается публичный URL для file_url сообщения
func (s *ChatService) UploadAttachment(ctx context.Context, sessionUUID, filename, mimeType string, data []byte) (string, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return "", fmt.Errorf("[ChatService] database connection не найден в context")
	}

	if int64(len(data)) > s.maxUploadBytes {
		return "", fmt.Errorf("[ChatService] файл превышает лимит %d байт", s.maxUploadBytes)
	}

	if _, err := s.sessionRepository.FindByUUID(ctx, db, sessionUUID); err != nil {
		return "", fmt.Errorf("[ChatService] сессия не найдена")
	}

	key := fmt.Sprintf("chat/%s/%s%s", sessionUUID, uuid.New().String(), filepath.Ext(filename))

	if err := s.storage.UploadObject(ctx, key, mimeType, data); err != nil {
		return "", util.LogError("[ChatService] не удалось загрузить вложение", err)
	}

	return s.storage.ObjectURL(key), nil
}
