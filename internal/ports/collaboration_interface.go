package ports

import (
	"context"

	"presentation-web-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type CollaboratorRepository interface {
	Upsert(ctx context.Context, exec sqlx.ExtContext, collaborator *model.Collaborator) error
	Get(ctx context.Context, exec sqlx.ExtContext, sessionUUID, userUUID string) (*model.Collaborator, error)
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, sessionUUID, userUUID, status string) error
	ListBySession(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) ([]model.Collaborator, error)
	IsMember(ctx context.Context, exec sqlx.ExtContext, sessionUUID, userUUID string) (bool, error)
}

type CollaborationService interface {
	InviteCollaborator(ctx context.Context, sessionUUID, email, permission string) error
	RespondInvitation(ctx context.Context, sessionUUID string, accept bool) error
	ListCollaborators(ctx context.Context, sessionUUID string) ([]model.Collaborator, error)
}
