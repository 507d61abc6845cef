package ports

import (
	"context"

	"presentation-web-server/internal/model"

	"github.com/jmoiron/sqlx"
)

// ViewerRepository : журнал подключений зрителей (append-only)
type ViewerRepository interface {
	Append(ctx context.Context, exec sqlx.ExtContext, viewer *model.Viewer) error
	TouchActivity(ctx context.Context, exec sqlx.ExtContext, sessionUUID, viewerID string) error
	Count(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) (int, error)
}

// CursorRepository : перезаписываемые на месте строки курсоров
type CursorRepository interface {
	UpsertPresenterCursor(ctx context.Context, exec sqlx.ExtContext, cursor *model.PresenterCursor) error
	GetPresenterCursor(ctx context.Context, exec sqlx.ExtContext, sessionUUID string) (*model.PresenterCursor, error)
	UpsertViewerCursor(ctx context.Context, exec sqlx.ExtContext, cursor *model.ViewerCursor) error
}

// SessionReader : контракт чтения снапшота сессии зрителем.
// Сейчас зрители опрашивают его с фиксированным интервалом; push-канал
// в будущем сможет заменить опрос, не трогая вызывающий код
type SessionReader interface {
	GetSessionByCode(ctx context.Context, joinCode string) (*model.SessionSnapshot, error)
}

type ViewerService interface {
	SessionReader
	JoinSession(ctx context.Context, joinCode, viewerID string, userUUID *string) (*model.SessionSnapshot, error)
	UpdateViewerCursor(ctx context.Context, joinCode, viewerID string, posX, posY, zoom float64) error
}
