package service

import (
	"context"
	"fmt"
	"log"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/util"
)

// ViewerService : read model сессии для зрителей. Зрители не аутентифицируются,
// сессия адресуется только join-кодом; завершённая сессия здесь неотличима
// от несуществующей
type ViewerService struct {
	sessionRepository  ports.SessionRepository
	documentRepository ports.DocumentRepository
	viewerRepository   ports.ViewerRepository
	cursorRepository   ports.CursorRepository
	cacheRepository    ports.SnapshotCache
}

func NewViewerService(
	sessionRepository ports.SessionRepository,
	documentRepository ports.DocumentRepository,
	viewerRepository ports.ViewerRepository,
	cursorRepository ports.CursorRepository,
	cacheRepository ports.SnapshotCache,
) *ViewerService {
	return &ViewerService{
		sessionRepository:  sessionRepository,
		documentRepository: documentRepository,
		viewerRepository:   viewerRepository,
		cursorRepository:   cursorRepository,
		cacheRepository:    cacheRepository,
	}
}

// GetSessionByCode : снапшот активной сессии по join-коду.
// Горячий путь опроса: сначала Redis, промах уходит в Postgres и
// прогревает кэш. Ошибка Redis не валит запрос, только кэширование
func (s *ViewerService) GetSessionByCode(ctx context.Context, joinCode string) (*model.SessionSnapshot, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ViewerService] database connection не найден в context")
	}

	snapshot, err := s.cacheRepository.GetSnapshot(ctx, joinCode)
	if err != nil {
		log.Printf("[ViewerService] ошибка чтения кэша: %v", err)
	}
	if snapshot != nil {
		return snapshot, nil
	}

	snapshot, err = s.buildSnapshot(ctx, db, joinCode)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.SetSnapshot(ctx, joinCode, snapshot); err != nil {
		log.Printf("[ViewerService] ошибка записи кэша: %v", err)
	}

	return snapshot, nil
}

func (s *ViewerService) buildSnapshot(ctx context.Context, db *config.Database, joinCode string) (*model.SessionSnapshot, error) {
	session, err := s.sessionRepository.FindActiveByJoinCode(ctx, db, joinCode)
	if err != nil {
		// завершённая и несуществующая сессии дают один и тот же ответ
		return nil, fmt.Errorf("[ViewerService] сессия не найдена")
	}

	snapshot := &model.SessionSnapshot{
		SessionUUID:        session.UUID,
		Title:              session.Title,
		JoinCode:           session.JoinCode,
		CurrentOrientation: session.CurrentOrientation,
		UpdatedAt:          session.UpdatedAt,
	}

	if session.CurrentDocumentUUID != nil {
		document, err := s.documentRepository.FindByUUID(ctx, db, *session.CurrentDocumentUUID)
		if err != nil {
			return nil, util.LogError("[ViewerService] ошибка получения документа", err)
		}
		snapshot.CurrentDocument = document
	}

	return snapshot, nil
}

// JoinSession : подключение зрителя. Каждое подключение добавляет строку
// в журнал, счётчик зрителей у докладчика накопительный
func (s *ViewerService) JoinSession(ctx context.Context, joinCode, viewerID string, userUUID *string) (*model.SessionSnapshot, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[ViewerService] database connection не найден в context")
	}

	if viewerID == "" {
		return nil, fmt.Errorf("[ViewerService] viewer_id обязателен")
	}

	session, err := s.sessionRepository.FindActiveByJoinCode(ctx, db, joinCode)
	if err != nil {
		return nil, fmt.Errorf("[ViewerService] сессия не найдена")
	}

	if err := s.viewerRepository.Append(ctx, db, &model.Viewer{
		SessionUUID: session.UUID,
		UserUUID:    userUUID,
		ViewerID:    viewerID,
	}); err != nil {
		return nil, util.LogError("[ViewerService] не удалось записать подключение", err)
	}

	log.Printf("[ViewerService] зритель %s подключился к сессии %s", viewerID, session.UUID)

	return s.GetSessionByCode(ctx, joinCode)
}

// UpdateViewerCursor : положение курсора зрителя, одна строка на пару
// (сессия, зритель), перезаписывается на месте. Заодно обновляется
// отметка активности зрителя
func (s *ViewerService) UpdateViewerCursor(ctx context.Context, joinCode, viewerID string, posX, posY, zoom float64) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[ViewerService] database connection не найден в context")
	}

	session, err := s.sessionRepository.FindActiveByJoinCode(ctx, db, joinCode)
	if err != nil {
		return fmt.Errorf("[ViewerService] сессия не найдена")
	}

	if err := s.cursorRepository.UpsertViewerCursor(ctx, db, &model.ViewerCursor{
		SessionUUID: session.UUID,
		ViewerID:    viewerID,
		PosX:        posX,
		PosY:        posY,
		Zoom:        zoom,
	}); err != nil {
		return util.LogError("[ViewerService] не удалось обновить курсор", err)
	}

	if err := s.viewerRepository.TouchActivity(ctx, db, session.UUID, viewerID); err != nil {
		log.Printf("[ViewerService] ошибка обновления активности: %v", err)
	}

	return nil
}
