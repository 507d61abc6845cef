package repository

import (
	"context"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type ViewerRepository struct {
	*config.Database
}

func NewViewerRepository(database *config.Database) *ViewerRepository {
	return &ViewerRepository{database}
}

// Append : добавляет запись о подключении зрителя (журнал append-only)
func (r *ViewerRepository) Append(ctx context.Context, exec sqlx.ExtContext, viewer *model.Viewer) error {
	query := `
		INSERT INTO session_viewers (session_uuid, user_uuid, viewer_id, last_activity)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := exec.ExecContext(ctx, query, viewer.SessionUUID, viewer.UserUUID, viewer.ViewerID)
	if err != nil {
		return util.LogError("[ViewerRepo] не удалось сохранить запись зрителя", err)
	}
	return nil
}

// TouchActivity : обновляет отметку активности зрителя
func (r *ViewerRepository) TouchActivity(ctx context.Context, exec sqlx.ExtContext, sessionUUID, viewerID string) error {
	query := `
		UPDATE session_viewers SET last_activity = NOW()
		WHERE session_uuid = $1 AND viewer_id = $2
	`
	_, err := exec.ExecContext(ctx, query, sessionUUID, viewerID)
	if err != nil {
		return util.LogError("[ViewerRepo] не удалось обновить активность зрителя", err)
	}
	return nil
}

// Count : накопительный счётчик подключений зрителей к сессии
func (r *ViewerRepository) Count(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM session_viewers WHERE session_uuid = $1`
	err := sqlx.GetContext(ctx, exec, &count, query, sessionUUID)
	if err != nil {
		return 0, util.LogError("[ViewerRepo] не удалось посчитать зрителей", err)
	}
	return count, nil
}
