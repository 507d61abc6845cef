package ports

import (
	"context"

	"presentation-web-server/internal/model"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	UpsertByExternalID(ctx context.Context, exec sqlx.ExtContext, externalID, email, role string) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByEmail(ctx context.Context, exec sqlx.ExtContext, email string) (*model.User, error)
	TouchLastSignedIn(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	UpdateRole(ctx context.Context, exec sqlx.ExtContext, uuid, role string) error
	Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error)
	EmailExists(ctx context.Context, exec sqlx.ExtContext, email string) (bool, error)
	ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error)
}

type UserService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
	ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error)
	SetRole(ctx context.Context, userUUID, role string) error
}
