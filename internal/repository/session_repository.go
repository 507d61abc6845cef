package repository

import (
	"context"
	"database/sql"
	"errors"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type SessionRepository struct {
	*config.Database
}

func NewSessionRepository(database *config.Database) *SessionRepository {
	return &SessionRepository{database}
}

// Create : сохраняет новую сессию (active, документ не отображается)
func (r *SessionRepository) Create(ctx context.Context, exec sqlx.ExtContext, session *model.Session) (*model.Session, error) {
	query := `
		INSERT INTO presentation_sessions (uuid, presenter_uuid, join_code, title, is_active, current_orientation)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		RETURNING uuid, presenter_uuid, join_code, title, is_active, current_document_uuid, current_orientation, created_at, updated_at
	`

	created := &model.Session{}
	err := exec.QueryRowxContext(ctx, query,
		session.UUID,
		session.PresenterUUID,
		session.JoinCode,
		session.Title,
		session.CurrentOrientation,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[SessionRepo] ошибка вставки сессии в БД", err)
	}

	return created, nil
}

// FindByUUID : ищет сессию по UUID
func (r *SessionRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) (*model.Session, error) {
	query := `
		SELECT uuid, presenter_uuid, join_code, title, is_active, current_document_uuid, current_orientation, created_at, updated_at
		FROM presentation_sessions WHERE uuid = $1
	`
	var session model.Session
	err := sqlx.GetContext(ctx, exec, &session, query, sessionUUID)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindActiveByJoinCode : ищет активную сессию по join-коду.
// Завершённая сессия и несуществующий код неразличимы для вызывающего —
// оба случая дают sql.ErrNoRows
func (r *SessionRepository) FindActiveByJoinCode(ctx context.Context, exec sqlx.ExtContext, joinCode string) (*model.Session, error) {
	query := `
		SELECT uuid, presenter_uuid, join_code, title, is_active, current_document_uuid, current_orientation, created_at, updated_at
		FROM presentation_sessions WHERE join_code = $1 AND is_active = TRUE
	`
	var session model.Session
	err := sqlx.GetContext(ctx, exec, &session, query, joinCode)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ListByPresenter : сессии, принадлежащие докладчику
func (r *SessionRepository) ListByPresenter(ctx context.Context, exec sqlx.ExtContext, presenterUUID string) ([]model.Session, error) {
	query := `
		SELECT uuid, presenter_uuid, join_code, title, is_active, current_document_uuid, current_orientation, created_at, updated_at
		FROM presentation_sessions
		WHERE presenter_uuid = $1
		ORDER BY created_at DESC
	`
	sessions := []model.Session{}
	err := sqlx.SelectContext(ctx, exec, &sessions, query, presenterUUID)
	if err != nil {
		return nil, util.LogError("[SessionRepo] не удалось получить список сессий", err)
	}
	return sessions, nil
}

// IsOwner : прямая проверка владения по ключу (без полного списка)
func (r *SessionRepository) IsOwner(ctx context.Context, exec sqlx.ExtContext, sessionUUID, presenterUUID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM presentation_sessions WHERE uuid = $1 AND presenter_uuid = $2)`
	err := sqlx.GetContext(ctx, exec, &exists, query, sessionUUID, presenterUUID)
	if err != nil {
		return false, util.LogError("[SessionRepo] не удалось проверить владельца", err)
	}
	return exists, nil
}

// UpdateCurrentDocument : переключает отображаемый документ.
// Последняя запись побеждает, токена версии нет
func (r *SessionRepository) UpdateCurrentDocument(ctx context.Context, exec sqlx.ExtContext, sessionUUID string, documentUUID *string, orientation string) error {
	query := `
		UPDATE presentation_sessions
		SET current_document_uuid = $2, current_orientation = $3, updated_at = NOW()
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query, sessionUUID, documentUUID, orientation)
	if err != nil {
		return util.LogError("[SessionRepo] не удалось обновить отображаемый документ", err)
	}
	return nil
}

// ClearCurrentDocument : сбрасывает указатель, если он ссылается на документ
func (r *SessionRepository) ClearCurrentDocument(ctx context.Context, exec sqlx.ExtContext, sessionUUID, documentUUID string) error {
	query := `
		UPDATE presentation_sessions
		SET current_document_uuid = NULL, updated_at = NOW()
		WHERE uuid = $1 AND current_document_uuid = $2
	`
	_, err := exec.ExecContext(ctx, query, sessionUUID, documentUUID)
	if err != nil {
		return util.LogError("[SessionRepo] не удалось сбросить указатель документа", err)
	}
	return nil
}

// UpdateTitle : обновляет название сессии
func (r *SessionRepository) UpdateTitle(ctx context.Context, exec sqlx.ExtContext, sessionUUID, title string) error {
	query := `UPDATE presentation_sessions SET title = $2, updated_at = NOW() WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, sessionUUID, title)
	if err != nil {
		return util.LogError("[SessionRepo] не удалось обновить название сессии", err)
	}
	return nil
}

// End : завершает сессию; завершённая сессия остаётся в БД,
// но перестаёт быть доступной зрителям
func (r *SessionRepository) End(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) error {
	result, err := exec.ExecContext(ctx, `
		UPDATE presentation_sessions SET is_active = FALSE, updated_at = NOW() WHERE uuid = $1
	`, sessionUUID)
	if err != nil {
		return util.LogError("[SessionRepo] не удалось завершить сессию", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[SessionRepo] не удалось проверить, завершена ли сессия", err)
	}
	if rowsAffected == 0 {
		return errors.New("[SessionRepo] сессия не найдена")
	}

	return nil
}

func (r *SessionRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

// IsNotFound : true для отсутствующей строки
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
