package service

import (
	"context"
	"fmt"
	"log"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/ports"
	"presentation-web-server/internal/security"
	"presentation-web-server/internal/util"

	"github.com/google/uuid"
)

// SessionService : состояние сессии {active, ended} × {документ отображается
// или нет}. Указатель current_document_uuid — единственный значимый
// разделяемый мутабельный ресурс: пишет его только владелец, побеждает
// последняя запись
type SessionService struct {
	sessionRepository  ports.SessionRepository
	documentRepository ports.DocumentRepository
	viewerRepository   ports.ViewerRepository
	cursorRepository   ports.CursorRepository
	cacheRepository    ports.SnapshotCache
}

func NewSessionService(
	sessionRepository ports.SessionRepository,
	documentRepository ports.DocumentRepository,
	viewerRepository ports.ViewerRepository,
	cursorRepository ports.CursorRepository,
	cacheRepository ports.SnapshotCache,
) *SessionService {
	return &SessionService{
		sessionRepository:  sessionRepository,
		documentRepository: documentRepository,
		viewerRepository:   viewerRepository,
		cursorRepository:   cursorRepository,
		cacheRepository:    cacheRepository,
	}
}

// CreateSession : создаёт активную сессию без отображаемого документа
// и с уникальным join-кодом
func (s *SessionService) CreateSession(ctx context.Context, title string) (*model.Session, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[SessionService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[SessionService] пользователь не авторизован")
	}

	if title == "" {
		return nil, fmt.Errorf("[SessionService] название сессии обязательно")
	}

	joinCode, err := util.GenerateUniqueJoinCode(ctx, db.DB, util.JoinCodeLength)
	if err != nil {
		return nil, util.LogError("[SessionService] не удалось сгенерировать join-код", err)
	}

	session := &model.Session{
		UUID:               uuid.New().String(),
		PresenterUUID:      claims.UserUUID,
		JoinCode:           joinCode,
		Title:              title,
		CurrentOrientation: model.OrientationPortrait,
	}

	created, err := s.sessionRepository.Create(ctx, db, session)
	if err != nil {
		return nil, util.LogError("[SessionService] не удалось сохранить сессию", err)
	}

	log.Printf("[SessionService] сессия %s создана, код %s", created.UUID, created.JoinCode)

	return created, nil
}

// GetSessions : сессии, принадлежащие принципалу
func (s *SessionService) GetSessions(ctx context.Context) ([]model.Session, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[SessionService] database connection не найден в context")
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[SessionService] пользователь не авторизован")
	}

	return s.sessionRepository.ListByPresenter(ctx, db, claims.UserUUID)
}

// ownedSession : прямая проверка владения по ключу
func (s *SessionService) ownedSession(ctx context.Context, db *config.Database, sessionUUID string) (*model.Session, error) {
	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil || claims == nil {
		return nil, fmt.Errorf("[SessionService] пользователь не авторизован")
	}

	session, err := s.sessionRepository.FindByUUID(ctx, db, sessionUUID)
	if err != nil {
		return nil, fmt.Errorf("[SessionService] сессия не найдена")
	}

	if session.PresenterUUID != claims.UserUUID {
		return nil, fmt.Errorf("[SessionService] доступ запрещён")
	}

	return session, nil
}

// UpdateCurrentDocument : переключает отображаемый документ сессии.
// documentUUID = nil возвращает сессию в состояние «документ не отображается».
// Ненулевой documentUUID обязан принадлежать этой же сессии.
// Токена версии нет: при гонке двух переключений победит коммит,
// завершившийся последним
func (s *SessionService) UpdateCurrentDocument(ctx context.Context, sessionUUID string, documentUUID *string, orientation string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[SessionService] database connection не найден в context")
	}

	if orientation != model.OrientationPortrait && orientation != model.OrientationLandscape {
		return fmt.Errorf("[SessionService] неизвестная ориентация: %s", orientation)
	}

	session, err := s.ownedSession(ctx, db, sessionUUID)
	if err != nil {
		return err
	}

	if !session.IsActive {
		return fmt.Errorf("[SessionService] сессия завершена")
	}

	if documentUUID != nil {
		belongs, err := s.documentRepository.BelongsToSession(ctx, db, *documentUUID, sessionUUID)
		if err != nil {
			return util.LogError("[SessionService] ошибка проверки документа", err)
		}
		if !belongs {
			return fmt.Errorf("[SessionService] документ не принадлежит сессии")
		}
	}

	if err := s.sessionRepository.UpdateCurrentDocument(ctx, db, sessionUUID, documentUUID, orientation); err != nil {
		return util.LogError("[SessionService] не удалось обновить отображаемый документ", err)
	}

	// зрители увидят смену документа на следующем опросе
	if err := s.cacheRepository.DeleteSnapshot(ctx, session.JoinCode); err != nil {
		log.Printf("[SessionService] ошибка инвалидации кэша: %v", err)
	}

	return nil
}

// UpdateTitle : переименование сессии (только владелец)
func (s *SessionService) UpdateTitle(ctx context.Context, sessionUUID string, title string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[SessionService] database connection не найден в context")
	}

	if title == "" {
		return fmt.Errorf("[SessionService] название сессии обязательно")
	}

	session, err := s.ownedSession(ctx, db, sessionUUID)
	if err != nil {
		return err
	}

	if err := s.sessionRepository.UpdateTitle(ctx, db, sessionUUID, title); err != nil {
		return util.LogError("[SessionService] не удалось обновить название", err)
	}

	if err := s.cacheRepository.DeleteSnapshot(ctx, session.JoinCode); err != nil {
		log.Printf("[SessionService] ошибка инвалидации кэша: %v", err)
	}

	return nil
}

// EndSession : active → ended. Терминально для зрителей: завершённая сессия
// на пути чтения неотличима от несуществующей, хотя владельцу остаётся видна
func (s *SessionService) EndSession(ctx context.Context, sessionUUID string) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[SessionService] database connection не найден в context")
	}

	session, err := s.ownedSession(ctx, db, sessionUUID)
	if err != nil {
		return err
	}

	if err := s.sessionRepository.End(ctx, db, sessionUUID); err != nil {
		return util.LogError("[SessionService] не удалось завершить сессию", err)
	}

	if err := s.cacheRepository.DeleteSnapshot(ctx, session.JoinCode); err != nil {
		log.Printf("[SessionService] ошибка инвалидации кэша: %v", err)
	}

	log.Printf("[SessionService] сессия %s завершена", sessionUUID)

	return nil
}

// GetViewerCount : накопительный счётчик подключений (только владелец).
// Журнал зрителей append-only, поэтому счётчик не убывает
func (s *SessionService) GetViewerCount(ctx context.Context, sessionUUID string) (int, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return 0, fmt.Errorf("[SessionService] database connection не найден в context")
	}

	if _, err := s.ownedSession(ctx, db, sessionUUID); err != nil {
		return 0, err
	}

	return s.viewerRepository.Count(ctx, db, sessionUUID)
}

// UpdateZoomAndCursor : положение указателя докладчика, одна строка на
// сессию, перезаписывается на месте
func (s *SessionService) UpdateZoomAndCursor(ctx context.Context, sessionUUID string, posX, posY, zoom float64) error {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return fmt.Errorf("[SessionService] database connection не найден в context")
	}

	if _, err := s.ownedSession(ctx, db, sessionUUID); err != nil {
		return err
	}

	return s.cursorRepository.UpsertPresenterCursor(ctx, db, &model.PresenterCursor{
		SessionUUID: sessionUUID,
		PosX:        posX,
		PosY:        posY,
		Zoom:        zoom,
	})
}

// GetCursorAndZoom : текущее положение указателя докладчика
func (s *SessionService) GetCursorAndZoom(ctx context.Context, sessionUUID string) (*model.PresenterCursor, error) {
	db, ok := ctx.Value("db").(*config.Database)
	if !ok {
		return nil, fmt.Errorf("[SessionService] database connection не найден в context")
	}

	cursor, err := s.cursorRepository.GetPresenterCursor(ctx, db, sessionUUID)
	if err != nil {
		// курсор ещё ни разу не выставлялся
		return &model.PresenterCursor{SessionUUID: sessionUUID, Zoom: 1}, nil
	}

	return cursor, nil
}
