package ports

import (
	"context"

	"presentation-web-server/internal/model"
)

// SnapshotCache : Redis слой для пути опроса зрителей
type SnapshotCache interface {
	SetSnapshot(ctx context.Context, joinCode string, snapshot *model.SessionSnapshot) error
	GetSnapshot(ctx context.Context, joinCode string) (*model.SessionSnapshot, error)
	DeleteSnapshot(ctx context.Context, joinCode string) error
}
