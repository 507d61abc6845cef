package ports

import (
	"context"

	"presentation-web-server/internal/model"

	"github.com/jmoiron/sqlx"
)

// SessionRepository : SQL слой сессий
type SessionRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, session *model.Session) (*model.Session, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) (*model.Session, error)
	FindActiveByJoinCode(ctx context.Context, exec sqlx.ExtContext, joinCode string) (*model.Session, error)
	ListByPresenter(ctx context.Context, exec sqlx.ExtContext, presenterUUID string) ([]model.Session, error)
	IsOwner(ctx context.Context, exec sqlx.ExtContext, sessionUUID, presenterUUID string) (bool, error)
	UpdateCurrentDocument(ctx context.Context, exec sqlx.ExtContext, sessionUUID string, documentUUID *string, orientation string) error
	ClearCurrentDocument(ctx context.Context, exec sqlx.ExtContext, sessionUUID, documentUUID string) error
	UpdateTitle(ctx context.Context, exec sqlx.ExtContext, sessionUUID, title string) error
	End(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type SessionService interface {
	CreateSession(ctx context.Context, title string) (*model.Session, error)
	GetSessions(ctx context.Context) ([]model.Session, error)
	UpdateCurrentDocument(ctx context.Context, sessionUUID string, documentUUID *string, orientation string) error
	UpdateTitle(ctx context.Context, sessionUUID, title string) error
	EndSession(ctx context.Context, sessionUUID string) error
	GetViewerCount(ctx context.Context, sessionUUID string) (int, error)
	UpdateZoomAndCursor(ctx context.Context, sessionUUID string, posX, posY, zoom float64) error
	GetCursorAndZoom(ctx context.Context, sessionUUID string) (*model.PresenterCursor, error)
}
