package repository

import (
	"context"

	"presentation-web-server/config"
	"presentation-web-server/internal/model"
	"presentation-web-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type InvitationRepository struct {
	*config.Database
}

func NewInvitationRepository(database *config.Database) *InvitationRepository {
	return &InvitationRepository{database}
}

// Create : сохраняет коммерческое приглашение
func (r *InvitationRepository) Create(ctx context.Context, exec sqlx.ExtContext, invitation *model.Invitation) (*model.Invitation, error) {
	query := `
		INSERT INTO commercial_invitations (uuid, token, email, invitee_name, used, creator_uuid)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING uuid, token, email, invitee_name, used, revoked_at, creator_uuid, created_at
	`

	created := &model.Invitation{}
	err := exec.QueryRowxContext(ctx, query,
		invitation.UUID,
		invitation.Token,
		invitation.Email,
		invitation.InviteeName,
		invitation.CreatorUUID,
	).StructScan(created)

	if err != nil {
		return nil, util.LogError("[InvitationRepo] ошибка вставки приглашения в БД", err)
	}

	return created, nil
}

// FindByToken : ищет приглашение по токену
func (r *InvitationRepository) FindByToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.Invitation, error) {
	query := `
		SELECT uuid, token, email, invitee_name, used, revoked_at, creator_uuid, created_at
		FROM commercial_invitations WHERE token = $1
	`
	var invitation model.Invitation
	err := sqlx.GetContext(ctx, exec, &invitation, query, token)
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindByUUID : ищет приглашение по UUID
func (r *InvitationRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, invitationUUID string) (*model.Invitation, error) {
	query := `
		SELECT uuid, token, email, invitee_name, used, revoked_at, creator_uuid, created_at
		FROM commercial_invitations WHERE uuid = $1
	`
	var invitation model.Invitation
	err := sqlx.GetContext(ctx, exec, &invitation, query, invitationUUID)
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListByCreator : приглашения, созданные администратором
func (r *InvitationRepository) ListByCreator(ctx context.Context, exec sqlx.ExtContext, creatorUUID string) ([]model.Invitation, error) {
	query := `
		SELECT uuid, token, email, invitee_name, used, revoked_at, creator_uuid, created_at
		FROM commercial_invitations
		WHERE creator_uuid = $1
		ORDER BY created_at DESC
	`
	invitations := []model.Invitation{}
	err := sqlx.SelectContext(ctx, exec, &invitations, query, creatorUUID)
	if err != nil {
		return nil, util.LogError("[InvitationRepo] не удалось получить список приглашений", err)
	}
	return invitations, nil
}

// MarkUsed : помечает приглашение активированным (однократно)
func (r *InvitationRepository) MarkUsed(ctx context.Context, exec sqlx.ExtContext, invitationUUID string) error {
	_, err := exec.ExecContext(ctx, `
		UPDATE commercial_invitations SET used = TRUE WHERE uuid = $1 AND used = FALSE
	`, invitationUUID)
	if err != nil {
		return util.LogError("[InvitationRepo] не удалось пометить приглашение использованным", err)
	}
	return nil
}

// Revoke : отзывает приглашение; отозванный токен перестаёт делегировать права
func (r *InvitationRepository) Revoke(ctx context.Context, exec sqlx.ExtContext, invitationUUID string) error {
	result, err := exec.ExecContext(ctx, `
		UPDATE commercial_invitations SET revoked_at = NOW() WHERE uuid = $1 AND revoked_at IS NULL
	`, invitationUUID)
	if err != nil {
		return util.LogError("[InvitationRepo] не удалось отозвать приглашение", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[InvitationRepo] не удалось проверить отзыв приглашения", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[InvitationRepo] приглашение не найдено или уже отозвано", nil)
	}

	return nil
}
