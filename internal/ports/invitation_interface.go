package ports

import (
	"context"

	"presentation-web-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type InvitationRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, invitation *model.Invitation) (*model.Invitation, error)
	FindByToken(ctx context.Context, exec sqlx.ExtContext, token string) (*model.Invitation, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, invitationUUID string) (*model.Invitation, error)
	ListByCreator(ctx context.Context, exec sqlx.ExtContext, creatorUUID string) ([]model.Invitation, error)
	MarkUsed(ctx context.Context, exec sqlx.ExtContext, invitationUUID string) error
	Revoke(ctx context.Context, exec sqlx.ExtContext, invitationUUID string) error
}

type InvitationService interface {
	CreateInvitation(ctx context.Context, email, name string) (*model.Invitation, error)
	ListInvitations(ctx context.Context) ([]model.Invitation, error)
	RevokeInvitation(ctx context.Context, invitationUUID string) error
	RedeemInvitation(ctx context.Context, token string) (*model.Invitation, error)
}
