package repository

import (
	"context"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type CursorRepository struct {
	*config.Database
}

func NewCursorRepository(database *config.Database) *CursorRepository {
	return &CursorRepository{database}
}

// UpsertPresenterCursor : одна строка на сессию, перезаписывается на месте
func (r *CursorRepository) UpsertPresenterCursor(ctx context.Context, exec sqlx.ExtContext, cursor *model.PresenterCursor) error {
	query := `
		INSERT INTO presenter_cursors (session_uuid, pos_x, pos_y, zoom, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (session_uuid) DO UPDATE
		SET pos_x = EXCLUDED.pos_x, pos_y = EXCLUDED.pos_y, zoom = EXCLUDED.zoom, updated_at = NOW()
	`
	_, err := exec.ExecContext(ctx, query, cursor.SessionUUID, cursor.PosX, cursor.PosY, cursor.Zoom)
	if err != nil {
		return util.LogError("[CursorRepo] не удалось сохранить курсор докладчика", err)
	}
	return nil
}

// GetPresenterCursor : текущее положение курсора докладчика
func (r *CursorRepository) GetPresenterCursor(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) (*model.PresenterCursor, error) {
	query := `
		SELECT session_uuid, pos_x, pos_y, zoom, updated_at
		FROM presenter_cursors WHERE session_uuid = $1
	`
	var cursor model.PresenterCursor
	err := sqlx.GetContext(ctx, exec, &cursor, query, sessionUUID)
	if err != nil {
		return nil, err
	}
	return &cursor, nil
}

// UpsertViewerCursor : строка на пару (сессия, зритель), перезаписывается на месте
func (r *CursorRepository) UpsertViewerCursor(ctx context.Context, exec sqlx.ExtContext, cursor *model.ViewerCursor) error {
	query := `
		INSERT INTO viewer_cursors (session_uuid, viewer_id, pos_x, pos_y, zoom, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (session_uuid, viewer_id) DO UPDATE
		SET pos_x = EXCLUDED.pos_x, pos_y = EXCLUDED.pos_y, zoom = EXCLUDED.zoom, updated_at = NOW()
	`
	_, err := exec.ExecContext(ctx, query, cursor.SessionUUID, cursor.ViewerID, cursor.PosX, cursor.PosY, cursor.Zoom)
	if err != nil {
		return util.LogError("[CursorRepo] не удалось сохранить курсор зрителя", err)
	}
	return nil
}
