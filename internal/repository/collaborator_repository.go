package repository

import (
	"context"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type CollaboratorRepository struct {
	*config.Database
}

func NewCollaboratorRepository(database *config.Database) *CollaboratorRepository {
	return &CollaboratorRepository{database}
}

// Upsert : приглашает пользователя в сессию (повторное приглашение обновляет права)
func (r *CollaboratorRepository) Upsert(ctx context.Context, exec sqlx.ExtContext, collaborator *model.Collaborator) error {
	query := `
		INSERT INTO session_collaborators (session_uuid, user_uuid, permission, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (session_uuid, user_uuid) DO UPDATE
		SET permission = EXCLUDED.permission, status = EXCLUDED.status
	`
	_, err := exec.ExecContext(ctx, query,
		collaborator.SessionUUID,
		collaborator.UserUUID,
		collaborator.Permission,
		collaborator.Status)
	if err != nil {
		return util.LogError("[CollaboratorRepo] не удалось сохранить приглашение", err)
	}
	return nil
}

// Get : приглашение пользователя в сессию
func (r *CollaboratorRepository) Get(ctx context.Context, exec sqlx.ExtContext, sessionUUID, userUUID string) (*model.Collaborator, error) {
	query := `
		SELECT session_uuid, user_uuid, permission, status, created_at
		FROM session_collaborators
		WHERE session_uuid = $1 AND user_uuid = $2
	`
	var collaborator model.Collaborator
	err := sqlx.GetContext(ctx, exec, &collaborator, query, sessionUUID, userUUID)
	if err != nil {
		return nil, err
	}
	return &collaborator, nil
}

// UpdateStatus : принятие или отклонение приглашения
func (r *CollaboratorRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, sessionUUID, userUUID, status string) error {
	result, err := exec.ExecContext(ctx, `
		UPDATE session_collaborators SET status = $3
		WHERE session_uuid = $1 AND user_uuid = $2 AND status = 'pending'
	`, sessionUUID, userUUID, status)
	if err != nil {
		return util.LogError("[CollaboratorRepo] не удалось обновить статус приглашения", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CollaboratorRepo] не удалось проверить обновление статуса", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[CollaboratorRepo] приглашение не найдено", nil)
	}

	return nil
}

// ListBySession : соведущие сессии
func (r *CollaboratorRepository) ListBySession(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) ([]model.Collaborator, error) {
	query := `
		SELECT session_uuid, user_uuid, permission, status, created_at
		FROM session_collaborators
		WHERE session_uuid = $1
		ORDER BY created_at ASC
	`
	collaborators := []model.Collaborator{}
	err := sqlx.SelectContext(ctx, exec, &collaborators, query, sessionUUID)
	if err != nil {
		return nil, util.LogError("[CollaboratorRepo] не удалось получить список соведущих", err)
	}
	return collaborators, nil
}

// IsMember : true, если пользователь — принятый соведущий сессии
func (r *CollaboratorRepository) IsMember(ctx context.Context, exec sqlx.ExtContext, sessionUUID, userUUID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM session_collaborators
			WHERE session_uuid = $1 AND user_uuid = $2 AND status = 'accepted'
		)
	`
	err := sqlx.GetContext(ctx, exec, &exists, query, sessionUUID, userUUID)
	if err != nil {
		return false, util.LogError("[CollaboratorRepo] ошибка проверки участника", err)
	}
	return exists, nil
}
