package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/security"
	"presentation-web-server/internal/util"

	"github.com/google/uuid"
)

// допустимые MIME-типы загружаемых документов
var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/gif":       true,
	"image/webp":      true,
	"video/mp4":       true,
	"video/webm":      true,
}

type DocumentService struct {
	documentRepository     ports.DocumentRepository
	sessionRepository      ports.SessionRepository
	collaboratorRepository ports.CollaboratorRepository
	cacheRepository        ports.SnapshotCache
	storage                ports.S3Storage
	maxUploadBytes         int64
	presignTTL             time.Duration
}

func NewDocumentService(
	documentRepository ports.DocumentRepository,
	sessionRepository ports.SessionRepository,
	collaboratorRepository ports.CollaboratorRepository,
	cacheRepository ports.SnapshotCache,
	storage ports.S3Storage,
	uploadCfg *config.UploadConfig,
	presignTTL time.Duration,
) *DocumentService {
	return &DocumentService{
		documentRepository:     documentRepository,
		sessionRepository:      sessionRepository,
		collaboratorRepository: collaboratorRepository,
		cacheRepository:        cacheRepository,
		storage:                storage,
		maxUploadBytes:         uploadCfg.MaxBytes,
		presignTTL:             presignTTL,
	}
}

// canManage : документами управляет владелец сессии либо принятый
// соавтор с правом edit или control
func (s *DocumentService) canManage(ctx context.Context, db *config.Database, session *model.Session) error {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return fmt.Errorf("[DocumentService] пользователь не авторизован")
	}

	if session.PresenterUUID == claims.UserUUID {
		return nil
	}

	collaborator, err := s.collaboratorRepository.Get(ctx, db, session.UUID, claims.UserUUID)
	if err == nil && collaborator.Status == model.CollaboratorAccepted &&
		(collaborator.Permission == model.PermissionEdit || collaborator.Permission == model.PermissionControl) {
		return nil
	}

	return fmt.Errorf("[DocumentService] доступ запрещён")
}

// UploadDocument : сначала объект кладётся в хранилище, и только затем
// создаётся строка в БД. При сбое на втором шаге остаётся осиротевший
// объект, но не строка с битой ссылкой
func (s *DocumentService) UploadDocument(ctx context.Context, sessionUUID, filename, mimeType string, data []byte) (*model.Document, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[DocumentService] database connection не найден в context")
	}

	if int64(len(data)) > s.maxUploadBytes {
		return nil, fmt.Errorf("[DocumentService] файл превышает лимит %d байт", s.maxUploadBytes)
	}
	if !allowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("[DocumentService] недопустимый тип файла: %s", mimeType)
	}

	session, err := s.sessionRepository.FindByUUID(ctx, db, sessionUUID)
	if err != nil {
		return nil, fmt.Errorf("[DocumentService] сессия не найдена")
	}
	if err := s.canManage(ctx, db, session); err != nil {
		return nil, err
	}

	existing, err := s.documentRepository.ListBySession(ctx, db, sessionUUID)
	if err != nil {
		return nil, util.LogError("[DocumentService] ошибка получения документов", err)
	}

	// ключ генерируется заново на каждую загрузку, дедупликации нет
	key := fmt.Sprintf("sessions/%s/%s%s", sessionUUID, uuid.New().String(), filepath.Ext(filename))

	if err := s.storage.UploadObject(ctx, key, mimeType, data); err != nil {
		return nil, util.LogError("[DocumentService] не удалось загрузить файл в хранилище", err)
	}

	document := &model.Document{
		UUID:         uuid.New().String(),
		SessionUUID:  sessionUUID,
		Title:        filename,
		DocType:      model.DocTypeFromMime(mimeType),
		StoragePath:  key,
		PublicURL:    s.storage.ObjectURL(key),
		MimeType:     mimeType,
		SizeBytes:    int64(len(data)),
		DisplayOrder: len(existing) + 1,
	}

	if err := s.documentRepository.Create(ctx, db, document); err != nil {
		return nil, util.LogError("[DocumentService] не удалось сохранить документ", err)
	}

	log.Printf("[DocumentService] документ %s загружен в сессию %s (%d байт)",
		document.UUID, sessionUUID, document.SizeBytes)

	return document, nil
}

// GetSessionDocuments : документы сессии в порядке отображения
func (s *DocumentService) GetSessionDocuments(ctx context.Context, sessionUUID string) ([]model.Document, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[DocumentService] database connection не найден в context")
	}

	session, err := s.sessionRepository.FindByUUID(ctx, db, sessionUUID)
	if err != nil {
		return nil, fmt.Errorf("[DocumentService] сессия не найдена")
	}
	if err := s.canManage(ctx, db, session); err != nil {
		return nil, err
	}

	return s.documentRepository.ListBySession(ctx, db, sessionUUID)
}

// DeleteDocument : удаляет строку документа и в той же транзакции
// обнуляет current_document_uuid сессии, если удаляется отображаемый
// документ. Иначе у сессии остался бы висячий указатель.
// Объект из хранилища удаляется уже после коммита, best-effort
func (s *DocumentService) DeleteDocument(ctx context.Context, documentUUID string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[DocumentService] database connection не найден в context")
	}

	document, err := s.documentRepository.FindByUUID(ctx, db, documentUUID)
	if err != nil {
		return fmt.Errorf("[DocumentService] документ не найден")
	}

	session, err := s.sessionRepository.FindByUUID(ctx, db, document.SessionUUID)
	if err != nil {
		return fmt.Errorf("[DocumentService] сессия не найдена")
	}
	if err := s.canManage(ctx, db, session); err != nil {
		return err
	}

	tx, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.sessionRepository.ClearCurrentDocument(ctx, tx, session.UUID, documentUUID); err != nil {
		return util.LogError("[DocumentService] не удалось обнулить отображаемый документ", err)
	}

	storagePath, err := s.documentRepository.Delete(ctx, tx, documentUUID)
	if err != nil {
		return util.LogError("[DocumentService] не удалось удалить документ", err)
	}

	if err := commit(); err != nil {
		return util.LogError("[DocumentService] не удалось зафиксировать транзакцию", err)
	}

	if err := s.storage.DeleteObject(ctx, storagePath); err != nil {
		log.Printf("[DocumentService] объект %s остался в хранилище: %v", storagePath, err)
	}

	if err := s.cacheRepository.DeleteSnapshot(ctx, session.JoinCode); err != nil {
		log.Printf("[DocumentService] ошибка инвалидации кэша: %v", err)
	}

	return nil
}

// ReorderDocuments : переупорядочивание документов сессии одной транзакцией.
// Каждый UUID обязан принадлежать этой сессии
func (s *DocumentService) ReorderDocuments(ctx context.Context, sessionUUID string, documentUUIDs []string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[DocumentService] database connection не найден в context")
	}

	session, err := s.sessionRepository.FindByUUID(ctx, db, sessionUUID)
	if err != nil {
		return fmt.Errorf("[DocumentService] сессия не найдена")
	}
	if err := s.canManage(ctx, db, session); err != nil {
		return err
	}

	for _, documentUUID := range documentUUIDs {
		belongs, err := s.documentRepository.BelongsToSession(ctx, db, documentUUID, sessionUUID)
		if err != nil {
			return util.LogError("[DocumentService] ошибка проверки документа", err)
		}
		if !belongs {
			return fmt.Errorf("[DocumentService] документ не принадлежит сессии")
		}
	}

	tx, rollback, commit, err := s.documentRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[DocumentService] не удалось начать транзакцию", err)
	}
	defer rollback()

	for i, documentUUID := range documentUUIDs {
		if err := s.documentRepository.UpdateOrder(ctx, tx, documentUUID, i+1); err != nil {
			return util.LogError("[DocumentService] не удалось обновить порядок", err)
		}
	}

	if err := commit(); err != nil {
		return util.LogError("[DocumentService] не удалось зафиксировать транзакцию", err)
	}

	return nil
}

// GetDownloadURL : pre-signed GET URL с ограниченным сроком жизни
func (s *DocumentService) GetDownloadURL(ctx context.Context, documentUUID string) (string, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return "", fmt.Errorf("[DocumentService] database connection не найден в context")
	}

	document, err := s.documentRepository.FindByUUID(ctx, db, documentUUID)
	if err != nil {
		return "", fmt.Errorf("[DocumentService] документ не найден")
	}

	session, err := s.sessionRepository.FindByUUID(ctx, db, document.SessionUUID)
	if err != nil {
		return "", fmt.Errorf("[DocumentService] сессия не найдена")
	}
	if err := s.canManage(ctx, db, session); err != nil {
		return "", err
	}

	return s.storage.GeneratePresignedGetURL(ctx, document.StoragePath, s.presignTTL)
}
